package list

import (
	stdlist "container/list"
	"sort"
	"testing"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTask struct {
	name     string
	priority int

	// node threads the task into the scheduling order, queued into the independent ready queue.
	node   Node[*testTask]
	queued Node[*testTask]
}

func taskNode(task *testTask) *Node[*testTask] {
	return &task.node
}

func queuedNode(task *testTask) *Node[*testTask] {
	return &task.queued
}

func newTaskList(names ...string) (*List[*testTask], []*testTask) {
	l := New(taskNode)
	tasks := make([]*testTask, 0, len(names))
	for _, name := range names {
		task := &testTask{name: name}
		tasks = append(tasks, task)
		l.PushBack(task)
	}

	return l, tasks
}

// checkList verifies the linking invariants of the given list together with its expected content in order.
func checkList(t *testing.T, l *List[*testTask], expectedTasks ...*testTask) {
	t.Helper()

	require.Equal(t, len(expectedTasks), l.Size(), "wrong list size")
	require.Equal(t, len(expectedTasks) == 0, l.IsEmpty(), "IsEmpty should agree with Size")

	if len(expectedTasks) == 0 {
		require.Nil(t, l.Front(), "an empty list should have no front")
		require.Nil(t, l.Back(), "an empty list should have no back")

		return
	}

	require.Nil(t, l.Front().Prev(), "the front should have no predecessor")
	require.Nil(t, l.Back().Next(), "the back should have no successor")
	require.Same(t, expectedTasks[0], l.Front().Item(), "wrong front")
	require.Same(t, expectedTasks[len(expectedTasks)-1], l.Back().Item(), "wrong back")

	index := 0
	var prev *Node[*testTask]
	for n := l.Front(); n != nil; n = n.Next() {
		require.Less(t, index, len(expectedTasks), "the list holds more nodes than expected")
		require.Same(t, expectedTasks[index], n.Item(), "wrong item at index %d", index)
		require.Same(t, prev, n.Prev(), "broken prev link at index %d", index)
		prev = n
		index++
	}
	require.Equal(t, len(expectedTasks), index, "the list holds fewer nodes than expected")
}

func TestList_New(t *testing.T) {
	assert.PanicsWithError(t, ErrNilCallback.Error(), func() {
		New[*testTask](nil)
	}, "a nil node accessor should be rejected")

	l := New(taskNode)
	checkList(t, l)
}

func TestList_Push(t *testing.T) {
	l := New(taskNode)
	a := &testTask{name: "a"}
	b := &testTask{name: "b"}
	c := &testTask{name: "c"}

	nodeA := l.PushBack(a)
	require.Same(t, a, nodeA.Item(), "the inserted node should recover its task")
	checkList(t, l, a)

	l.PushBack(b)
	checkList(t, l, a, b)

	l.PushFront(c)
	checkList(t, l, c, a, b)
}

func TestList_Insert(t *testing.T) {
	l, tasks := newTaskList("a", "b", "d")

	c := &testTask{name: "c"}
	l.InsertBefore(c, l.Back())
	checkList(t, l, tasks[0], tasks[1], c, tasks[2])

	e := &testTask{name: "e"}
	l.InsertAfter(e, l.Back())
	checkList(t, l, tasks[0], tasks[1], c, tasks[2], e)

	f := &testTask{name: "f"}
	l.InsertBefore(f, l.Front())
	checkList(t, l, f, tasks[0], tasks[1], c, tasks[2], e)

	// a nil position is only allowed on an empty list
	empty := New(taskNode)
	g := &testTask{name: "g"}
	empty.InsertBefore(g, nil)
	checkList(t, empty, g)

	empty2 := New(taskNode)
	h := &testTask{name: "h"}
	empty2.InsertAfter(h, nil)
	checkList(t, empty2, h)
}

func TestList_Remove(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d")

	l.Remove(nil)
	checkList(t, l, tasks...)

	l.Remove(l.Front().Next())
	checkList(t, l, tasks[0], tasks[2], tasks[3])

	l.RemoveFront()
	checkList(t, l, tasks[2], tasks[3])

	l.RemoveBack()
	checkList(t, l, tasks[2])

	l.RemoveBack()
	checkList(t, l)

	// removals on an empty list are no-ops
	l.RemoveFront()
	l.RemoveBack()
	checkList(t, l)
}

func TestList_RemoveAll(t *testing.T) {
	l, _ := newTaskList("a", "b", "c")
	nodeA, nodeB, nodeC := l.At(0), l.At(1), l.At(2)

	l.RemoveAll()
	checkList(t, l)

	// the detached chain stays internally linked while its outward links are poisoned
	assert.True(t, nodeA.Prev().IsPoison(), "the head side of the detached chain should be poisoned")
	assert.True(t, nodeC.Next().IsPoison(), "the tail side of the detached chain should be poisoned")
	require.Same(t, nodeB, nodeA.Next(), "the detached chain should stay linked")
	require.Same(t, nodeB, nodeC.Prev(), "the detached chain should stay linked")

	l.RemoveAll()
	checkList(t, l)
}

func TestList_At(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d", "e")

	for i, task := range tasks {
		require.Same(t, task, l.At(i).Item(), "wrong node at index %d", i)
	}

	assert.PanicsWithError(t, ErrIndexOutOfRange.Error(), func() {
		l.At(-1)
	}, "a negative index should be rejected")
	assert.PanicsWithError(t, ErrIndexOutOfRange.Error(), func() {
		l.At(l.Size())
	}, "an index past the back should be rejected")

	empty := New(taskNode)
	assert.PanicsWithError(t, ErrIndexOutOfRange.Error(), func() {
		empty.At(0)
	}, "any index into an empty list should be rejected")
}

func TestList_IndexOf(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d")

	for i, task := range tasks {
		assert.Equal(t, i, l.IndexOf(taskNode(task)), "wrong index for task %s", task.name)
	}

	foreign := &testTask{name: "foreign"}
	assert.PanicsWithError(t, ErrNotAnElement.Error(), func() {
		l.IndexOf(taskNode(foreign))
	}, "a node that was never inserted should be rejected")
	assert.PanicsWithError(t, ErrNotAnElement.Error(), func() {
		l.IndexOf(nil)
	}, "a nil node should be rejected")
}

func TestList_CutAndPaste(t *testing.T) {
	l, tasks := newTaskList("0", "1", "2", "3", "4", "5")

	from, to := l.At(2), l.At(4)
	l.Cut(from, to, 3)
	checkList(t, l, tasks[0], tasks[1], tasks[5])

	// the detached range stays internally linked while its outward links are poisoned
	assert.True(t, from.Prev().IsPoison(), "the head side of the detached range should be poisoned")
	assert.True(t, to.Next().IsPoison(), "the tail side of the detached range should be poisoned")
	require.Same(t, tasks[3], from.Next().Item(), "the detached range should stay linked")
	require.Same(t, tasks[3], to.Prev().Item(), "the detached range should stay linked")

	// pasting the range back between its former neighbors restores the list pointwise
	l.Paste(l.At(1), from, to, l.At(2), 3)
	checkList(t, l, tasks...)
}

func TestList_CutAndPasteWholeList(t *testing.T) {
	l, tasks := newTaskList("x", "y")

	from, to := l.Front(), l.Back()
	l.Cut(from, to, 2)
	checkList(t, l)
	require.Same(t, to, from.Next(), "the detached range should stay linked")

	l.Paste(nil, from, to, nil, 2)
	checkList(t, l, tasks...)
}

func TestList_CutAndPasteContract(t *testing.T) {
	l, tasks := newTaskList("a", "b")

	// an empty range is tolerated as a no-op
	l.Cut(nil, nil, 0)
	checkList(t, l, tasks...)
	l.Paste(l.Front(), nil, nil, l.Back(), 0)
	checkList(t, l, tasks...)

	// a half-open range is a contract violation
	assert.PanicsWithError(t, ErrInvalidRange.Error(), func() {
		l.Cut(l.Front(), nil, 1)
	}, "cutting a half-open range should be rejected")
	assert.PanicsWithError(t, ErrInvalidRange.Error(), func() {
		l.Paste(nil, nil, taskNode(&testTask{}), nil, 1)
	}, "pasting a half-open range should be rejected")
	checkList(t, l, tasks...)

	// operations on an already detached node follow a poisoned link and are trapped
	other, otherTasks := newTaskList("x", "y", "z")
	n := taskNode(otherTasks[1])
	other.Remove(n)
	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		other.Cut(n, n, 1)
	}, "cutting a detached node again should be detected")
	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		other.InsertBefore(&testTask{name: "w"}, n)
	}, "inserting before a detached position should be detected")
	checkList(t, other, otherTasks[0], otherTasks[2])
}

func TestList_Splice(t *testing.T) {
	a, aTasks := newTaskList("a0", "a1", "a2")
	b, bTasks := newTaskList("b0", "b1")

	a.SpliceBack(b, b.Front(), b.Back(), b.Size())
	checkList(t, a, aTasks[0], aTasks[1], aTasks[2], bTasks[0], bTasks[1])
	checkList(t, b)

	// moving the range back restores both lists
	b.SpliceBack(a, taskNode(bTasks[0]), taskNode(bTasks[1]), 2)
	checkList(t, a, aTasks...)
	checkList(t, b, bTasks...)
}

func TestList_SpliceRanges(t *testing.T) {
	src, srcTasks := newTaskList("s0", "s1", "s2", "s3")
	dst, dstTasks := newTaskList("d0", "d1")

	dst.SpliceAfter(src, src.At(1), src.At(2), 2, dst.Front())
	checkList(t, dst, dstTasks[0], srcTasks[1], srcTasks[2], dstTasks[1])
	checkList(t, src, srcTasks[0], srcTasks[3])

	dst.SpliceBefore(src, src.Front(), src.Front(), 1, dst.Back())
	checkList(t, dst, dstTasks[0], srcTasks[1], srcTasks[2], srcTasks[0], dstTasks[1])
	checkList(t, src, srcTasks[3])

	dst.SpliceFront(src, src.Front(), src.Back(), 1)
	checkList(t, dst, srcTasks[3], dstTasks[0], srcTasks[1], srcTasks[2], srcTasks[0], dstTasks[1])
	checkList(t, src)

	// an empty range is tolerated as a no-op
	dst.SpliceBack(src, nil, nil, 0)
	checkList(t, src)
	require.Equal(t, 6, dst.Size(), "an empty splice should not change the destination")
}

func TestList_SpliceWithinList(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d")

	// move b behind d within the same list
	l.SpliceAfter(l, l.At(1), l.At(1), 1, l.Back())
	checkList(t, l, tasks[0], tasks[2], tasks[3], tasks[1])
}

func TestList_Sort(t *testing.T) {
	byPriority := func(a *testTask, b *testTask) int {
		return a.priority - b.priority
	}

	l := New(taskNode)
	tasks := make([]*testTask, 0)
	for i, priority := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		task := &testTask{name: string(rune('a' + i)), priority: priority}
		tasks = append(tasks, task)
		l.PushBack(task)
	}

	l.Sort(byPriority)
	checkList(t, l, tasks[1], tasks[3], tasks[6], tasks[0], tasks[2], tasks[4], tasks[7], tasks[5])

	// sorting a sorted list is a no-op in effect
	l.Sort(byPriority)
	checkList(t, l, tasks[1], tasks[3], tasks[6], tasks[0], tasks[2], tasks[4], tasks[7], tasks[5])
}

func TestList_SortStability(t *testing.T) {
	l := New(taskNode)
	equalA := &testTask{name: "first", priority: 1}
	equalB := &testTask{name: "second", priority: 1}
	l.PushBack(&testTask{name: "big", priority: 2})
	l.PushBack(equalA)
	l.PushBack(&testTask{name: "bigger", priority: 3})
	l.PushBack(equalB)

	l.Sort(func(a *testTask, b *testTask) int {
		return a.priority - b.priority
	})

	require.Same(t, equalA, l.Front().Item(), "equal tasks should keep their insertion order")
	require.Same(t, equalB, l.Front().Next().Item(), "equal tasks should keep their insertion order")
}

func TestList_SortLarge(t *testing.T) {
	l := New(taskNode)
	expectedPriorities := make([]int, 0, 128)
	for i := 0; i < 128; i++ {
		priority := (i * 37) % 19
		expectedPriorities = append(expectedPriorities, priority)
		l.PushBack(&testTask{priority: priority})
	}
	sort.Ints(expectedPriorities)

	l.Sort(func(a *testTask, b *testTask) int {
		return a.priority - b.priority
	})

	require.Equal(t, 128, l.Size(), "sorting should not change the size")
	index := 0
	var prev *Node[*testTask]
	for n := l.Front(); n != nil; n = n.Next() {
		assert.Equal(t, expectedPriorities[index], n.Item().priority, "wrong priority at index %d", index)
		require.Same(t, prev, n.Prev(), "broken prev link at index %d", index)
		prev = n
		index++
	}
	require.Same(t, prev, l.Back(), "the back should be the last reachable node")
}

func TestList_SortEdgeCases(t *testing.T) {
	byPriority := func(a *testTask, b *testTask) int {
		return a.priority - b.priority
	}

	empty := New(taskNode)
	empty.Sort(byPriority)
	checkList(t, empty)

	single, tasks := newTaskList("only")
	single.Sort(byPriority)
	checkList(t, single, tasks...)

	l, _ := newTaskList("a", "b")
	assert.PanicsWithError(t, ErrNilCallback.Error(), func() {
		l.Sort(nil)
	}, "a nil comparator should be rejected")
}

func TestList_ForEach(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c")

	visited := make([]*testTask, 0)
	require.NoError(t, l.ForEach(func(task *testTask) error {
		visited = append(visited, task)

		return nil
	}))
	require.Equal(t, tasks, visited, "the forward walk should visit every task in order")

	visited = visited[:0]
	require.NoError(t, l.ForEachReverse(func(task *testTask) error {
		visited = append(visited, task)

		return nil
	}))
	require.Equal(t, []*testTask{tasks[2], tasks[1], tasks[0]}, visited, "the reverse walk should visit every task in reverse order")

	errAbort := ierrors.New("abort")
	visited = visited[:0]
	err := l.ForEach(func(task *testTask) error {
		visited = append(visited, task)
		if task == tasks[1] {
			return errAbort
		}

		return nil
	})
	require.ErrorIs(t, err, errAbort, "the walk should forward the callback's error")
	require.Equal(t, tasks[:2], visited, "the walk should stop at the erroring task")
}

func TestList_RangeRemoveCurrent(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d")

	// the pre-saved next link allows detaching the current task mid-walk
	l.Range(func(task *testTask) {
		if task == tasks[1] || task == tasks[3] {
			l.Remove(taskNode(task))
		}
	})
	checkList(t, l, tasks[0], tasks[2])

	l.RangeReverse(func(task *testTask) {
		l.Remove(taskNode(task))
	})
	checkList(t, l)
}

func TestList_RangeCursors(t *testing.T) {
	l, tasks := newTaskList("a", "b", "c", "d")

	collect := func(walk func(callback func(task *testTask))) (visited []*testTask) {
		walk(func(task *testTask) {
			visited = append(visited, task)
		})

		return visited
	}

	assert.Equal(t, tasks[1:], collect(func(callback func(task *testTask)) {
		l.RangeFrom(l.At(1), callback)
	}), "RangeFrom should include the start")
	assert.Equal(t, tasks[2:], collect(func(callback func(task *testTask)) {
		l.RangeAfter(l.At(1), callback)
	}), "RangeAfter should exclude the start")
	assert.Equal(t, []*testTask{tasks[2], tasks[1], tasks[0]}, collect(func(callback func(task *testTask)) {
		l.RangeReverseFrom(l.At(2), callback)
	}), "RangeReverseFrom should include the start")
	assert.Equal(t, []*testTask{tasks[1], tasks[0]}, collect(func(callback func(task *testTask)) {
		l.RangeReverseAfter(l.At(2), callback)
	}), "RangeReverseAfter should exclude the start")

	assert.Empty(t, collect(func(callback func(task *testTask)) {
		l.RangeFrom(nil, callback)
	}), "a nil start should walk nothing")
	assert.Empty(t, collect(func(callback func(task *testTask)) {
		l.RangeAfter(l.Back(), callback)
	}), "walking after the back should walk nothing")
}

func TestList_PoisonDetection(t *testing.T) {
	l, tasks := newTaskList("a", "b")

	n := l.Front()
	l.Remove(n)
	checkList(t, l, tasks[1])

	sentinel := n.Next()
	require.NotNil(t, sentinel, "the link of a detached node should hold the poison sentinel")
	assert.True(t, sentinel.IsPoison(), "the sentinel should identify itself")
	assert.False(t, n.IsPoison(), "a real node should not identify as poison")

	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		sentinel.Item()
	}, "reading through the sentinel should be detected")
	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		sentinel.Next()
	}, "walking through the sentinel should be detected")
	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		sentinel.Prev()
	}, "walking through the sentinel should be detected")
	assert.PanicsWithError(t, ErrPoisonedNode.Error(), func() {
		l.RangeFrom(sentinel, func(task *testTask) {})
	}, "starting a walk at the sentinel should be detected")
}

func TestList_Reinsertion(t *testing.T) {
	l1 := New(taskNode)
	l2 := New(taskNode)
	task := &testTask{name: "wanderer"}

	n := l1.PushBack(task)
	l1.Remove(n)
	assert.True(t, n.Prev().IsPoison(), "the links of the detached node should be poisoned")
	assert.True(t, n.Next().IsPoison(), "the links of the detached node should be poisoned")

	// a detached node is free to join another list, which clears the poison
	l2.PushBack(task)
	checkList(t, l1)
	checkList(t, l2, task)
	assert.Equal(t, 0, l2.IndexOf(n), "the node should be an element of the second list")
	assert.Nil(t, n.Prev(), "the node's links should be consistent with the second list")
	assert.Nil(t, n.Next(), "the node's links should be consistent with the second list")
}

func TestList_MultiMembership(t *testing.T) {
	tasks := []*testTask{{name: "a"}, {name: "b"}, {name: "c"}}

	all := New(taskNode)
	ready := New(queuedNode)
	for _, task := range tasks {
		all.PushBack(task)
	}
	ready.PushBack(tasks[2])
	ready.PushBack(tasks[0])

	checkList(t, all, tasks...)
	checkList(t, ready, tasks[2], tasks[0])

	// membership in one list is independent of membership in the other
	ready.Remove(queuedNode(tasks[2]))
	checkList(t, ready, tasks[0])
	checkList(t, all, tasks...)
}

func TestList_String(t *testing.T) {
	l, _ := newTaskList("a", "b")

	str := l.String()
	assert.Contains(t, str, "List", "the string should name the container")
	assert.Contains(t, str, "size", "the string should report the size")
}

func BenchmarkContainerList(b *testing.B) {
	l := stdlist.New()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.PushBack(&testTask{priority: i})
	}
}

func BenchmarkList(b *testing.B) {
	l := New(taskNode)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.PushBack(&testTask{priority: i})
	}
}
