package domain

import (
	"sort"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in-progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

// ValidStatus reports whether s is one of the three defined states.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// ComplaintCategory enumerates complaint categories.
type ComplaintCategory string

const (
	CategoryElectricity ComplaintCategory = "electricity"
	CategoryPlumbing    ComplaintCategory = "plumbing"
	CategoryCarpentry   ComplaintCategory = "carpentry"
	CategoryGeneral     ComplaintCategory = "general"
)

// ValidCategory reports whether c is a defined category.
func ValidCategory(c ComplaintCategory) bool {
	switch c {
	case CategoryElectricity, CategoryPlumbing, CategoryCarpentry, CategoryGeneral:
		return true
	}
	return false
}

// EligibleTrade returns the staff trade suited to the category, or nil for
// general complaints which any trade may handle. Advisory only: assignment is
// never hard-constrained by trade.
func (c ComplaintCategory) EligibleTrade() *Trade {
	var t Trade
	switch c {
	case CategoryElectricity:
		t = TradeElectrician
	case CategoryPlumbing:
		t = TradePlumber
	case CategoryCarpentry:
		t = TradeCarpenter
	default:
		return nil
	}
	return &t
}

// Complaint is the aggregate for maintenance requests.
type Complaint struct {
	ID          string
	StudentID   string
	AssignedTo  *string
	Title       string
	Description string
	Category    ComplaintCategory
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var statusRank = map[ComplaintStatus]int{
	ComplaintStatusPending:    0,
	ComplaintStatusInProgress: 1,
	ComplaintStatusResolved:   2,
}

// SortForDisplay orders complaints for presentation: pending before
// in-progress before resolved, unassigned before assigned within equal
// status. The sort is stable so repeated fetches render identically.
func SortForDisplay(complaints []Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		ri, rj := statusRank[complaints[i].Status], statusRank[complaints[j].Status]
		if ri != rj {
			return ri < rj
		}
		return complaints[i].AssignedTo == nil && complaints[j].AssignedTo != nil
	})
}
