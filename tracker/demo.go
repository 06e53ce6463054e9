package tracker

import (
	"database/sql"
	"time"

	"github.com/relabs-tech/energytrack/core/pointers"
)

// demoEntry describes one seeded example entry, located relative to the
// time the demo account is created
type demoEntry struct {
	minutesAgo  int
	description string
	energy      *int
}

// demoEntries is roughly a week of example data
var demoEntries = []demoEntry{
	{5, "Just had coffee", pointers.IntPtr(6)},
	{45, "Woke up, feeling groggy", pointers.IntPtr(4)},
	{120, "Couldn't sleep well", pointers.IntPtr(3)},
	{180, "Late night snack - crackers", nil},
	{300, "Gaming session", pointers.IntPtr(5)},
	{420, "Dinner - pasta with pesto", nil},
	{540, "Afternoon walk", pointers.IntPtr(7)},
	{600, "Lunch - sandwich", nil},
	{720, "Morning meeting, tired", pointers.IntPtr(4)},
	{840, "Breakfast - oatmeal", pointers.IntPtr(6)},
	{1500, "McDonalds - 9 chicken mcnuggets", nil},
	{1515, "Extreme fatigue(!), brain turning off", pointers.IntPtr(2)},
	{1700, "Cheese bagel with chicken", nil},
	{1800, "Greek yogurt, mango, pecans", pointers.IntPtr(7)},
	{2880, "Sleep 9h, difficult to wake up", pointers.IntPtr(4)},
	{3000, "Bagel with scrambled eggs", nil},
	{3200, "Indomie with veggies", nil},
	{3400, "Focused work session", pointers.IntPtr(9)},
	{4320, "Woke up, black coffee", pointers.IntPtr(5)},
	{4500, "Pho for lunch", nil},
	{4680, "Afternoon slump", pointers.IntPtr(3)},
	{4800, "Evening cooking", pointers.IntPtr(6)},
	{5000, "Late night reading", pointers.IntPtr(5)},
	{5760, "Oatmeal with blueberries", pointers.IntPtr(6)},
	{5900, "Green tea, reading", pointers.IntPtr(7)},
	{6100, "Leftover pasta", nil},
	{6300, "Walk in the park", pointers.IntPtr(7)},
	{6500, "Salmon dinner", nil},
	{7200, "Slept in, croissant", pointers.IntPtr(6)},
	{7400, "Ramen for lunch", nil},
	{7800, "Stir fry tofu", nil},
	{8000, "Late night coding", pointers.IntPtr(4)},
	{8640, "Eggs and toast", pointers.IntPtr(7)},
	{8800, "Burrito bowl", nil},
	{9000, "Post-lunch crash", pointers.IntPtr(3)},
	{9200, "Espresso pick-me-up", pointers.IntPtr(6)},
	{9400, "Light dinner, soup", nil},
}

// seedDemoEntries inserts the demo entries for the given user as part of
// the caller's transaction
func (b *Backend) seedDemoEntries(tx *sql.Tx, userID int, now time.Time) error {
	for _, d := range demoEntries {
		timestamp := now.Add(-time.Duration(d.minutesAgo) * time.Minute)
		var id int
		err := tx.QueryRow(b.sqlInsertEntry, userID, timestamp, d.description, d.energy).Scan(&id)
		if err != nil {
			return err
		}
	}
	return nil
}
