package engine

import "strconv"

// seatsPerRow fixes the width of generated seat grids. A 100 seat show
// yields rows A through J of seats 1..10.
const seatsPerRow = 10

// GridLayout generates seat codes row by row: A1..A10, B1..B10 and so on,
// with double letters (AA, AB, ...) past row Z. The trailing premiumRows
// rows are tiered premium; premiumRows beyond the row count makes every
// seat premium.
func GridLayout(totalSeats, premiumRows int) []SeatSpec {
	if totalSeats <= 0 {
		return nil
	}
	rows := (totalSeats + seatsPerRow - 1) / seatsPerRow
	firstPremium := rows - premiumRows
	if firstPremium < 0 {
		firstPremium = 0
	}
	specs := make([]SeatSpec, 0, totalSeats)
	for row := 0; row < rows && len(specs) < totalSeats; row++ {
		tier := TierRegular
		if row >= firstPremium {
			tier = TierPremium
		}
		label := rowLabel(row)
		for n := 1; n <= seatsPerRow && len(specs) < totalSeats; n++ {
			specs = append(specs, SeatSpec{
				Code: label + strconv.Itoa(n),
				Tier: tier,
			})
		}
	}
	return specs
}

// rowLabel converts a zero-based row index to an alphabetical label:
// 0 -> A, 25 -> Z, 26 -> AA.
func rowLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}
