// Package world implements the immutable tag/choice-list structure
// used by the world/choice evaluation strategy: a deferred projection
// path from a constructor call site down to one of its components.
//
// Every operation here is pure: none of them mutate their receiver,
// they all return a new World that shares structure with the old one.
package world

import "fmt"

// Choice selects one component of a pair: the head or the tail.
type Choice int

const (
	Head Choice = iota
	Tail
)

func (c Choice) String() string {
	if c == Head {
		return "head"
	}
	return "tail"
}

type tagNode struct {
	tag  uint64
	next *tagNode
}

type choiceNode struct {
	choice Choice
	next   *choiceNode
}

// World pairs a stack of call-site tags with a stack of head/tail
// choices. The zero value is the empty world.
type World struct {
	tags    *tagNode
	choices *choiceNode
}

// New returns the empty world.
func New() World { return World{} }

// ConsTag returns a world with tag pushed onto the tag list; the
// choice list is shared unchanged.
func (w World) ConsTag(tag uint64) World {
	return World{tags: &tagNode{tag: tag, next: w.tags}, choices: w.choices}
}

// UnconsTag pops the head tag, returning it along with the remaining
// world. It fails if the tag list is empty.
func (w World) UnconsTag() (uint64, World, error) {
	if w.tags == nil {
		return 0, World{}, fmt.Errorf("world has no tags")
	}
	return w.tags.tag, World{tags: w.tags.next, choices: w.choices}, nil
}

// ConsChoice returns a world with c pushed onto the choice list; the
// tag list is shared unchanged.
func (w World) ConsChoice(c Choice) World {
	return World{tags: w.tags, choices: &choiceNode{choice: c, next: w.choices}}
}

// UnconsChoice pops the head choice, returning it along with the
// remaining world. It fails if the choice list is empty.
func (w World) UnconsChoice() (Choice, World, error) {
	if w.choices == nil {
		return 0, World{}, fmt.Errorf("no choices")
	}
	return w.choices.choice, World{tags: w.tags, choices: w.choices.next}, nil
}

// DropChoices returns a world with the same tags but an empty choice
// list.
func (w World) DropChoices() World {
	return World{tags: w.tags}
}

// HasChoices reports whether w's choice list is non-empty.
func (w World) HasChoices() bool {
	return w.choices != nil
}

// AppendChoice returns a world whose choice list has c appended at the
// tail, preserving the tag list. Defined inductively to match the
// reference semantics exactly: appending to an empty choice list is a
// cons, otherwise uncons, recurse on the rest, then re-cons the head
// back on. This costs O(n) in the length of the choice list but never
// mutates an existing node.
func (w World) AppendChoice(c Choice) World {
	if w.choices == nil {
		return w.ConsChoice(c)
	}
	head, rest, _ := w.UnconsChoice()
	return rest.AppendChoice(c).ConsChoice(head)
}
