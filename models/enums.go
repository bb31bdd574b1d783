package models

// Age groups gate prompt difficulty and gallery filtering.
const (
	AgeGroupPreschoolers = "preschoolers"
	AgeGroupKids         = "kids"
	AgeGroupTweens       = "tweens"
)

// Upload windows. daily_1/daily_2 carry a generated prompt, free_draw does
// not.
const (
	SlotDaily1   = "daily_1"
	SlotDaily2   = "daily_2"
	SlotFreeDraw = "free_draw"
)

// Moderation states of a post.
const (
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

func ValidAgeGroup(g string) bool {
	switch g {
	case AgeGroupPreschoolers, AgeGroupKids, AgeGroupTweens:
		return true
	}
	return false
}

func ValidSlot(s string) bool {
	switch s {
	case SlotDaily1, SlotDaily2, SlotFreeDraw:
		return true
	}
	return false
}

// DailySlots are the slots that get a generated prompt.
var DailySlots = []string{SlotDaily1, SlotDaily2}

// AgeGroups in canonical order.
var AgeGroups = []string{AgeGroupPreschoolers, AgeGroupKids, AgeGroupTweens}
