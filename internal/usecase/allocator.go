package usecase

import (
	"math"
	"time"

	"github.com/eslsoft/gearplan/internal/entity"
)

// fractions splits the daily budget across lessons (A), practice questions
// (Q) and spaced review (R).
type fractions struct {
	A, Q, R float64
}

var phaseFractions = map[entity.Phase]fractions{
	entity.PhaseInicio:   {A: 0.75, Q: 0.15, R: 0.10},
	entity.PhaseMeio:     {A: 0.65, Q: 0.15, R: 0.20},
	entity.PhaseFinal:    {A: 0.60, Q: 0.15, R: 0.25},
	entity.PhasePreProva: {A: 0.50, Q: 0.15, R: 0.30},
}

// dayOneFractions overrides the phase table on the very first study day.
var dayOneFractions = fractions{A: 0.80, Q: 0.20, R: 0.00}

// borrowQRatio caps how much of the Q quota an oversized lesson may absorb,
// per phase. The R side always lends at most 10% of its quota.
var borrowQRatio = map[entity.Phase]float64{
	entity.PhaseInicio:   0.40,
	entity.PhaseMeio:     0.30,
	entity.PhaseFinal:    0.20,
	entity.PhasePreProva: 0.15,
}

const borrowRRatio = 0.10

// residualSplit routes leftover A minutes into Q and R at the end of a day.
type residualSplit struct {
	Q, R float64
}

var residualPolicy = map[entity.Phase]residualSplit{
	entity.PhaseInicio:   {Q: 1.00, R: 0.00},
	entity.PhaseMeio:     {Q: 0.70, R: 0.30},
	entity.PhaseFinal:    {Q: 0.50, R: 0.50},
	entity.PhasePreProva: {Q: 0.30, R: 0.70},
}

// fitTolerance guards quota comparisons against floating point noise.
const fitTolerance = 1e-6

// Allocator runs the per-day budget simulation: phase quotas, cross-quota
// borrowing, forced carryover of oversized lessons and residual
// redistribution.
type Allocator struct {
	MinutesPerDay int
	ReviewOffsets []int
}

// NewAllocator builds an allocator for the given daily minute budget and
// spaced-repetition offsets.
func NewAllocator(minutesPerDay int, reviewOffsets []int) *Allocator {
	return &Allocator{MinutesPerDay: minutesPerDay, ReviewOffsets: reviewOffsets}
}

// AllocationResult is one full simulation pass: the per-day assignments in
// calendar order, the raw review events emitted while allocating, and the
// lessons the calendar could not absorb.
type AllocationResult struct {
	Days       []entity.StudyDay
	RawReviews []entity.ReviewEvent
	Remaining  []entity.Lesson
}

// Complete reports whether the whole backlog was allocated.
func (r *AllocationResult) Complete() bool {
	return len(r.Remaining) == 0
}

// dayState tracks the mutable quota bookkeeping for a single study day.
type dayState struct {
	aQuota, qQuota, rQuota float64
	maxBorrowQ, maxBorrowR float64
	borrowedQ, borrowedR   float64
	forceDebt              float64
}

func (s *dayState) qHeadroom() float64 {
	return math.Max(0, s.maxBorrowQ-s.borrowedQ)
}

func (s *dayState) rHeadroom() float64 {
	return math.Max(0, s.maxBorrowR-s.borrowedR)
}

// forceConsume charges an oversized lesson against the day: A quota first,
// then Q borrow headroom, then R borrow headroom. Whatever none of the three
// could cover becomes force debt; the lesson lands on the day regardless.
func (s *dayState) forceConsume(duration float64) {
	useA := math.Min(s.aQuota, duration)
	s.aQuota -= useA
	remain := duration - useA

	useQ := math.Min(s.qHeadroom(), remain)
	s.borrowedQ += useQ
	remain -= useQ

	useR := math.Min(s.rHeadroom(), remain)
	s.borrowedR += useR
	remain -= useR

	if remain > fitTolerance {
		s.forceDebt += remain
	}
}

// fitConsume charges a lesson already known to fit within A quota plus
// borrow headroom.
func (s *dayState) fitConsume(duration float64) {
	need := math.Max(0, duration-s.aQuota)

	takeQ := math.Min(need, s.qHeadroom())
	s.borrowedQ += takeQ
	need -= takeQ

	takeR := math.Min(need, s.rHeadroom())
	s.borrowedR += takeR

	s.aQuota -= math.Max(0, duration-(takeQ+takeR))
	if s.aQuota < 0 {
		s.aQuota = 0
	}
}

// Run simulates the calendar against the backlog. The input backlog is not
// mutated; the queue is consumed through a cursor so repeated runs over
// shrunk backlogs stay independent.
func (a *Allocator) Run(calendar []time.Time, backlog []entity.Lesson) *AllocationResult {
	result := &AllocationResult{}
	total := len(calendar)
	budget := float64(a.MinutesPerDay)

	queue := backlog
	cursor := 0
	mustForceCarryover := false

	for idx, date := range calendar {
		phase := PhaseFor(idx, total)
		fr := phaseFractions[phase]
		if idx == 0 {
			fr = dayOneFractions
		}

		state := &dayState{
			aQuota: budget * fr.A,
			qQuota: budget * fr.Q,
			rQuota: budget * fr.R,
		}
		state.maxBorrowQ = state.qQuota * borrowQRatio[phase]
		state.maxBorrowR = state.rQuota * borrowRRatio

		day := entity.StudyDay{Date: date, Phase: phase}

		forceFirst := func() {
			if cursor >= len(queue) {
				mustForceCarryover = false
				return
			}
			lesson := queue[cursor]
			cursor++
			state.forceConsume(float64(lesson.Duration))
			day.Lessons = append(day.Lessons, lesson)
			result.RawReviews = append(result.RawReviews, a.reviewEvents(lesson, date)...)
			mustForceCarryover = false
		}

		if mustForceCarryover {
			forceFirst()
		}

		for cursor < len(queue) {
			duration := float64(queue[cursor].Duration)
			available := state.aQuota + state.qHeadroom() + state.rHeadroom()
			if duration > available+fitTolerance {
				mustForceCarryover = true
				break
			}
			state.fitConsume(duration)
			lesson := queue[cursor]
			cursor++
			day.Lessons = append(day.Lessons, lesson)
			result.RawReviews = append(result.RawReviews, a.reviewEvents(lesson, date)...)
		}

		// A day never stays empty while lessons remain: the first
		// lesson of the day is forced in even when it exceeds every
		// quota.
		if len(day.Lessons) == 0 && cursor < len(queue) {
			forceFirst()
		}

		split := residualPolicy[phase]
		state.qQuota += state.aQuota * split.Q
		state.rQuota += state.aQuota * split.R
		state.aQuota = 0

		// Force debt is charged half against each bucket; an oversized
		// lesson ate into the day's slack on both sides.
		day.QMinutes = clampMinutes(state.qQuota - state.borrowedQ - state.forceDebt/2)
		day.RMinutes = clampMinutes(state.rQuota - state.borrowedR - state.forceDebt/2)

		result.Days = append(result.Days, day)
	}

	result.Remaining = append([]entity.Lesson(nil), queue[cursor:]...)
	return result
}

func (a *Allocator) reviewEvents(lesson entity.Lesson, watched time.Time) []entity.ReviewEvent {
	events := make([]entity.ReviewEvent, 0, len(a.ReviewOffsets))
	for _, off := range a.ReviewOffsets {
		events = append(events, entity.ReviewEvent{
			Lesson:    lesson,
			WatchedOn: watched,
			Weight:    lesson.Weight,
			Target:    watched.AddDate(0, 0, off),
		})
	}
	return events
}

func clampMinutes(v float64) int {
	m := int(math.Round(v))
	if m < 0 {
		return 0
	}
	return m
}
