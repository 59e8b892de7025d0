// Package calendar models the guest-facing side of the booking flow: the
// two-click check-in/check-out selection and the rolling two-month
// availability grid it paints against.
//
// A Selection is a plain value object meant to be threaded through a
// single-threaded event loop. Nothing here is safe for concurrent use; the
// asynchronous part (authoritative re-validation of a tentative range) is
// modelled with an explicit pending flag and a generation counter instead of
// callbacks, so a stale fetch result is simply discarded when it arrives.
package calendar

import (
	"errors"
	"time"

	"github.com/TommyTam2012/hotel-booking-api/utils"
)

// ErrDateUnavailable is returned when a date cannot start a stay: it is in
// the past or the cached remaining count cannot cover the quantity.
var ErrDateUnavailable = errors.New("calendar: date not selectable as check-in")

// State is the selection's position in the two-click flow.
type State int

const (
	Empty State = iota
	CheckInSet
	RangeSet
)

func (s State) String() string {
	switch s {
	case CheckInSet:
		return "check_in_set"
	case RangeSet:
		return "range_set"
	default:
		return "empty"
	}
}

// Day is one date of cached availability. Known is false for dates the store
// has never priced; those render as open, not sold out.
type Day struct {
	Date      time.Time
	Price     float64
	Remaining int
	Known     bool
}

// defaultOpenRemaining mirrors the store's "unknown, assume open" fallback
// for dates the cache has no record of at all.
const defaultOpenRemaining = 5

// Revalidation is the token handed out when a tentative range needs
// authoritative confirmation. The caller fetches availability for the closed
// night interval [Start, End] however it likes and feeds the result back via
// Resolve; the embedded generation lets Resolve drop results that arrive
// after the selection has already moved on.
type Revalidation struct {
	generation uint64
	RoomTypeID uint
	Quantity   int
	Start      time.Time // first occupied night
	End        time.Time // last occupied night (check-out minus one day)
}

// Outcome reports what Resolve did with a fetch result.
type Outcome int

const (
	// Confirmed: the tentative range is feasible; selection stays RangeSet.
	Confirmed Outcome = iota
	// Invalidated: some night in range cannot cover the quantity; check-out
	// was reverted and the selection is back to CheckInSet.
	Invalidated
	// Stale: the selection changed while the fetch was in flight; the result
	// was discarded without touching anything.
	Stale
	// FetchFailed: transient store failure; the selection and the last-known
	// cache are untouched and the caller may retry.
	FetchFailed
)

// Selection tracks a two-click date-range pick against one room type.
type Selection struct {
	roomTypeID uint
	quantity   int
	today      time.Time

	state    State
	checkIn  time.Time
	checkOut time.Time // exclusive; zero unless state == RangeSet

	pending    bool
	generation uint64

	cache map[string]Day
}

// NewSelection starts an empty selection. today anchors both the grid window
// and the "no check-in in the past" rule.
func NewSelection(roomTypeID uint, quantity int, today time.Time) *Selection {
	if quantity < 1 {
		quantity = 1
	}
	return &Selection{
		roomTypeID: roomTypeID,
		quantity:   quantity,
		today:      utils.Day(today),
		cache:      make(map[string]Day),
	}
}

func (s *Selection) State() State     { return s.state }
func (s *Selection) RoomTypeID() uint { return s.roomTypeID }
func (s *Selection) Quantity() int    { return s.quantity }
func (s *Selection) Pending() bool    { return s.pending }

// CheckIn returns the chosen check-in date; ok is false while Empty.
func (s *Selection) CheckIn() (time.Time, bool) {
	return s.checkIn, s.state != Empty
}

// CheckOut returns the chosen exclusive check-out date; ok is false unless a
// completed range is present.
func (s *Selection) CheckOut() (time.Time, bool) {
	return s.checkOut, s.state == RangeSet
}

// Nights is the occupied-night count of the completed range, zero otherwise.
func (s *Selection) Nights() int {
	if s.state != RangeSet {
		return 0
	}
	return utils.NightsBetween(s.checkIn, s.checkOut)
}

// Prime merges fetched availability into the local cache (the "most recent
// availability fetch" the grid paints from). It never changes the selection.
func (s *Selection) Prime(days map[string]Day) {
	for k, d := range days {
		s.cache[k] = d
	}
}

// Pick handles one date click. It returns a non-nil *Revalidation when the
// click completed a tentative range that now needs authoritative
// confirmation; the caller fetches and then calls Resolve. Pick itself never
// blocks: further clicks may happen before the fetch resolves, and the
// generation counter makes the late result a no-op.
func (s *Selection) Pick(d time.Time) (*Revalidation, error) {
	d = utils.Day(d)

	// A second click strictly after an active check-in completes the range;
	// any other click (re)starts one.
	if s.state == CheckInSet && utils.CompareDates(d, s.checkIn) > 0 {
		s.checkOut = d
		s.state = RangeSet
		s.pending = true
		s.generation++
		return &Revalidation{
			generation: s.generation,
			RoomTypeID: s.roomTypeID,
			Quantity:   s.quantity,
			Start:      s.checkIn,
			End:        utils.AddDays(d, -1),
		}, nil
	}

	if !s.selectableAsCheckIn(d) {
		return nil, ErrDateUnavailable
	}
	s.checkIn = d
	s.checkOut = time.Time{}
	s.state = CheckInSet
	s.pending = false
	s.generation++
	return nil, nil
}

// Reset clears both ends unconditionally.
func (s *Selection) Reset() {
	s.checkIn = time.Time{}
	s.checkOut = time.Time{}
	s.state = Empty
	s.pending = false
	s.generation++
}

// SetQuantity changes the requested unit count. With a completed range the
// previous validation no longer holds, so a new Revalidation is handed out.
func (s *Selection) SetQuantity(q int) *Revalidation {
	if q < 1 {
		q = 1
	}
	s.quantity = q
	return s.revalidateRange()
}

// SetRoomType switches the room type. The cache belongs to the old type and
// is dropped; a completed range must be re-validated against the new one.
func (s *Selection) SetRoomType(roomTypeID uint) *Revalidation {
	if roomTypeID == s.roomTypeID {
		return nil
	}
	s.roomTypeID = roomTypeID
	s.cache = make(map[string]Day)
	return s.revalidateRange()
}

func (s *Selection) revalidateRange() *Revalidation {
	if s.state != RangeSet {
		return nil
	}
	s.pending = true
	s.generation++
	return &Revalidation{
		generation: s.generation,
		RoomTypeID: s.roomTypeID,
		Quantity:   s.quantity,
		Start:      s.checkIn,
		End:        utils.AddDays(s.checkOut, -1),
	}
}

// Resolve applies the result of the fetch a Revalidation asked for. days is
// the authoritative availability for [rev.Start, rev.End] keyed by ISO date;
// fetchErr reports a transient store failure.
func (s *Selection) Resolve(rev *Revalidation, days map[string]Day, fetchErr error) Outcome {
	if rev == nil || rev.generation != s.generation {
		return Stale
	}

	if fetchErr != nil {
		// Transient: keep the last-known cache and the tentative range; the
		// next successful fetch self-heals.
		return FetchFailed
	}

	s.Prime(days)
	s.pending = false

	for d := rev.Start; utils.CompareDates(d, rev.End) <= 0; d = utils.AddDays(d, 1) {
		if s.cachedRemaining(d) < s.quantity {
			// Revert the check-out; the check-in survives so the guest can
			// pick a different end date.
			s.checkOut = time.Time{}
			s.state = CheckInSet
			return Invalidated
		}
	}
	return Confirmed
}

func (s *Selection) selectableAsCheckIn(d time.Time) bool {
	if utils.CompareDates(d, s.today) < 0 {
		return false
	}
	return s.cachedRemaining(d) >= s.quantity
}

// cachedRemaining reads the local cache with the default-open fallback for
// unknown dates.
func (s *Selection) cachedRemaining(d time.Time) int {
	if day, ok := s.cache[utils.FormatDate(d)]; ok {
		if !day.Known {
			return defaultOpenRemaining
		}
		return day.Remaining
	}
	return defaultOpenRemaining
}
