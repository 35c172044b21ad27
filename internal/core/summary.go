package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Summary holds the derived statistics for a record list. It is a pure
// function of the list and is recomputed on every change, never persisted.
type Summary struct {
	Total   Money
	Count   int
	Average float64 // decimal value; 0 when Count is 0
	// ByCategory preserves first-seen category order so chart colors
	// stay stable across recomputations. Absent categories are omitted.
	ByCategory []CategoryAmount
}

// Summarize reduces a record list to its summary in a single pass.
func Summarize(records []Record) Summary {
	var s Summary
	index := make(map[Category]int)
	for _, r := range records {
		s.Total.Cents += r.Amount.Cents
		s.Count++
		if i, ok := index[r.Category]; ok {
			s.ByCategory[i].Amount.Cents += r.Amount.Cents
		} else {
			index[r.Category] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryAmount{Category: r.Category, Amount: r.Amount})
		}
	}
	if s.Count > 0 {
		s.Average = s.Total.Float64() / float64(s.Count)
	}
	return s
}
