package holiday

// Defaults returns the built-in holiday table. Lunar-calendar holidays carry
// pre-computed Gregorian dates for 2024-2030; outside that range they fall
// back to their canonical month/day.
func Defaults() []Definition {
	return []Definition{
		{Name: "元旦", Month: 1, Day: 1, Aliases: []string{"新年"}},
		{Name: "春节", Month: 2, Day: 1, LengthDays: 7, Aliases: []string{"新春", "Spring Festival"}, DynamicDates: map[int]MonthDay{
			2024: {2, 10},
			2025: {1, 29},
			2026: {2, 17},
			2027: {2, 6},
			2028: {1, 26},
			2029: {2, 13},
			2030: {2, 3},
		}},
		{Name: "元宵节", Month: 2, Day: 15, Aliases: []string{"上元节"}, DynamicDates: map[int]MonthDay{
			2024: {2, 24},
			2025: {2, 12},
			2026: {3, 3},
			2027: {2, 20},
			2028: {2, 9},
			2029: {2, 28},
			2030: {2, 18},
		}},
		{Name: "妇女节", Month: 3, Day: 8, Aliases: []string{"女神节"}},
		{Name: "植树节", Month: 3, Day: 12},
		{Name: "清明节", Month: 4, Day: 5, Aliases: []string{"踏青节"}},
		{Name: "劳动节", Month: 5, Day: 1, LengthDays: 3, Aliases: []string{"五一"}},
		{Name: "青年节", Month: 5, Day: 4},
		{Name: "端午节", Month: 6, Day: 3, Aliases: []string{"龙舟节"}, DynamicDates: map[int]MonthDay{
			2024: {6, 10},
			2025: {5, 31},
			2026: {6, 19},
			2027: {6, 9},
			2028: {5, 28},
			2029: {6, 16},
			2030: {6, 5},
		}},
		{Name: "儿童节", Month: 6, Day: 1, Aliases: []string{"六一"}},
		{Name: "建党节", Month: 7, Day: 1},
		{Name: "七夕节", Month: 8, Day: 7, Aliases: []string{"乞巧节"}, DynamicDates: map[int]MonthDay{
			2024: {8, 10},
			2025: {8, 29},
			2026: {8, 19},
			2027: {8, 8},
			2028: {8, 26},
			2029: {8, 15},
			2030: {8, 4},
		}},
		{Name: "建军节", Month: 8, Day: 1},
		{Name: "教师节", Month: 9, Day: 10},
		{Name: "中秋节", Month: 9, Day: 15, LengthDays: 3, Aliases: []string{"月圆节", "Moon Festival"}, DynamicDates: map[int]MonthDay{
			2024: {9, 17},
			2025: {10, 6},
			2026: {9, 25},
			2027: {9, 15},
			2028: {10, 3},
			2029: {9, 22},
			2030: {9, 12},
		}},
		{Name: "国庆节", Month: 10, Day: 1, LengthDays: 7, Aliases: []string{"十一", "National Day"}},
		{Name: "重阳节", Month: 10, Day: 9, Aliases: []string{"敬老节"}, DynamicDates: map[int]MonthDay{
			2024: {10, 11},
			2025: {10, 29},
			2026: {10, 18},
			2027: {10, 7},
			2028: {10, 26},
			2029: {10, 15},
			2030: {10, 4},
		}},
	}
}
