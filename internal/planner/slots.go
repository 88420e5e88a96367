package planner

import (
	"github.com/Izazzubayer/Pathly/internal/models"
)

// SlotWindow is the time range and soft capacity of one time slot
type SlotWindow struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	MaxPlaces int    `json:"max_places"`
}

// SlotConfig holds the four slot windows for a traveller
type SlotConfig struct {
	Morning   SlotWindow `json:"morning"`
	Afternoon SlotWindow `json:"afternoon"`
	Evening   SlotWindow `json:"evening"`
	Night     SlotWindow `json:"night"`
}

// Window returns the window of the given slot type
func (c *SlotConfig) Window(t models.TimeSlotType) *SlotWindow {
	switch t {
	case models.SlotMorning:
		return &c.Morning
	case models.SlotEvening:
		return &c.Evening
	case models.SlotNight:
		return &c.Night
	default:
		return &c.Afternoon
	}
}

// GetSlotConfig derives slot windows from the base day adjusted for energy, then vibe
func GetSlotConfig(uc models.UserContext) SlotConfig {
	cfg := SlotConfig{
		Morning:   SlotWindow{Start: "09:00", End: "12:00", MaxPlaces: 2},
		Afternoon: SlotWindow{Start: "12:00", End: "17:00", MaxPlaces: 3},
		Evening:   SlotWindow{Start: "17:00", End: "21:00", MaxPlaces: 2},
		Night:     SlotWindow{Start: "21:00", End: "24:00", MaxPlaces: 2},
	}

	switch uc.Energy {
	case models.EnergyLow:
		cfg.Morning.MaxPlaces = 1
		cfg.Afternoon.MaxPlaces = 2
		cfg.Evening.MaxPlaces = 1
	case models.EnergyHigh:
		cfg.Morning.Start = "08:00"
		cfg.Afternoon.MaxPlaces = 4
		cfg.Evening.MaxPlaces = 3
	}

	switch uc.Vibe {
	case models.VibeParty:
		cfg.Night.End = "02:00"
		cfg.Morning.Start = "11:00"
		cfg.Night.MaxPlaces = 3
	case models.VibeChill:
		cfg.Morning.Start = "10:00"
		cfg.Afternoon.MaxPlaces = 2
	}

	return cfg
}

// slotAffinity lists preferred slots per activity type, best first
var slotAffinity = map[models.ActivityType][]models.TimeSlotType{
	models.ActivityCafe:       {models.SlotMorning},
	models.ActivityAttraction: {models.SlotMorning, models.SlotAfternoon},
	models.ActivityViewpoint:  {models.SlotMorning, models.SlotEvening},
	models.ActivityTemple:     {models.SlotMorning},
	models.ActivityNature:     {models.SlotMorning},
	models.ActivityMuseum:     {models.SlotAfternoon},
	models.ActivityShopping:   {models.SlotAfternoon},
	models.ActivityMarket:     {models.SlotAfternoon},
	models.ActivityBeach:      {models.SlotAfternoon},
	models.ActivityRestaurant: {models.SlotEvening},
	models.ActivityBar:        {models.SlotEvening, models.SlotNight},
	models.ActivityClub:       {models.SlotNight},
}

// PreferredSlots returns the slot preference list of an activity type
func PreferredSlots(activity models.ActivityType) []models.TimeSlotType {
	if prefs, ok := slotAffinity[activity]; ok {
		return prefs
	}
	return []models.TimeSlotType{models.SlotAfternoon}
}

// AssignTimeSlots buckets a day's places into time slots and returns the day
// with Slots replaced. Places are taken in visit order and a place never goes
// to an earlier slot than the stop before it, so joining the slots in order
// yields day.Places. Each place takes its first preferred slot with room that
// is not behind the current one, then the next slot with room, and otherwise
// overflows the later of its primary slot and the current one. Empty slots are
// omitted.
func AssignTimeSlots(day models.ItineraryDay, uc models.UserContext) models.ItineraryDay {
	cfg := GetSlotConfig(uc)
	buckets := make([][]models.ItineraryPlace, len(models.SlotOrder))

	hasRoom := func(i int) bool {
		return len(buckets[i]) < cfg.Window(models.SlotOrder[i]).MaxPlaces
	}

	current := 0
	for _, ip := range day.Places {
		prefs := PreferredSlots(ip.Place.ActivityType)
		target := max(current, slotIndex(prefs[0]))

		placed := false
		for _, t := range prefs {
			if i := slotIndex(t); i >= current && hasRoom(i) {
				target, placed = i, true
				break
			}
		}
		if !placed {
			for i := current; i < len(models.SlotOrder); i++ {
				if hasRoom(i) {
					target = i
					break
				}
			}
		}

		buckets[target] = append(buckets[target], ip)
		current = target
	}

	slots := make([]models.TimeSlot, 0, len(models.SlotOrder))
	for i, t := range models.SlotOrder {
		if len(buckets[i]) == 0 {
			continue
		}
		w := cfg.Window(t)
		slots = append(slots, models.TimeSlot{
			Type:      t,
			StartTime: w.Start,
			EndTime:   w.End,
			Places:    buckets[i],
		})
	}

	day.Slots = slots
	return day
}

func slotIndex(t models.TimeSlotType) int {
	for i, s := range models.SlotOrder {
		if s == t {
			return i
		}
	}
	return 1
}
