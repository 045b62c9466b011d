package sounding

import (
	"github.com/google/uuid"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/util"
)

// Owner identifies whoever put a note into the set: a keyboard, the mouse, a
// player. Only the owner that added a note can take its claim back.
type Owner string

func NewOwner(kind string) Owner {
	return Owner(kind + ":" + uuid.NewString())
}

// Set is the collection of audible notes. A note sounds while at least one
// owner holds it. It is not safe for concurrent use; a session guards it.
type Set struct {
	holders map[string]map[Owner]bool
}

func New() *Set {
	return &Set{holders: make(map[string]map[Owner]bool)}
}

// Add records that owner wants note sounding. first reports whether the note
// was silent before this call.
func (s *Set) Add(owner Owner, note string) (first bool) {
	owners, ok := s.holders[note]
	if !ok {
		owners = make(map[Owner]bool)
		s.holders[note] = owners
	}
	first = len(owners) == 0
	owners[owner] = true
	return first
}

// Remove drops owner's claim on note. last reports whether the note went silent.
func (s *Set) Remove(owner Owner, note string) (last bool) {
	owners, ok := s.holders[note]
	if !ok || !owners[owner] {
		return false
	}
	delete(owners, owner)
	if len(owners) == 0 {
		delete(s.holders, note)
		return true
	}
	return false
}

// RemoveOwner drops every claim owner holds and returns the notes that went
// silent because of it.
func (s *Set) RemoveOwner(owner Owner) []string {
	var silenced []string
	for _, note := range util.GetKeysSorted(s.holders) {
		if s.Remove(owner, note) {
			silenced = append(silenced, note)
		}
	}
	return pitch.Sort(silenced)
}

func (s *Set) Clear() []string {
	notes := s.Notes()
	s.holders = make(map[string]map[Owner]bool)
	return notes
}

func (s *Set) Contains(note string) bool {
	_, ok := s.holders[note]
	return ok
}

func (s *Set) Held(owner Owner, note string) bool {
	return s.holders[note][owner]
}

func (s *Set) Owners(note string) []Owner {
	return util.GetKeysSorted(s.holders[note])
}

// Notes returns the sounding notes in pitch order.
func (s *Set) Notes() []string {
	return pitch.Sort(util.GetKeys(s.holders))
}

func (s *Set) Len() int {
	return len(s.holders)
}
