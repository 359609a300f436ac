package track

import (
	"github.com/raceiq/raceiq-engine/pkg/model"
)

// builtin holds the reference tracks. Entries are shared and must not be modified.
var builtin = []*model.Track{
	{
		Name:      "Monaco Grand Prix",
		Length:    3.337,
		Turns:     19,
		LapRecord: 70.246,
		Sectors: []model.Sector{
			{Number: 1, Length: 1.2, Corners: []int{1, 2, 3, 4, 5, 6}, ExpectedTime: 23.5},
			{Number: 2, Length: 1.1, Corners: []int{7, 8, 9, 10, 11, 12}, ExpectedTime: 22.8},
			{Number: 3, Length: 1.037, Corners: []int{13, 14, 15, 16, 17, 18, 19}, ExpectedTime: 23.9},
		},
		Corners: []model.Corner{
			corner(1, "Sainte Devote", model.CornerSlow, 180, 120, 3, true, 2.1),
			corner(2, "Massenet", model.CornerMedium, 160, 140, 4, false, 1.8),
			corner(3, "Casino Square", model.CornerFast, 200, 180, 5, false, 1.5),
			corner(4, "Mirabeau", model.CornerSlow, 140, 80, 2, true, 2.8),
			corner(5, "Grand Hotel", model.CornerSlow, 100, 90, 3, false, 2.2),
			corner(6, "Fairmont", model.CornerSlow, 120, 100, 3, true, 2.5),
			corner(7, "Tunnel", model.CornerFast, 280, 260, 7, false, 1.2),
			corner(8, "Chicane", model.CornerSlow, 180, 120, 3, true, 3.2),
			corner(9, "Tabac", model.CornerMedium, 160, 140, 4, false, 1.9),
			corner(10, "Swimming Pool", model.CornerSlow, 120, 100, 3, true, 2.7),
		},
	},
	{
		Name:      "Silverstone",
		Length:    5.891,
		Turns:     18,
		LapRecord: 85.351,
		Sectors: []model.Sector{
			{Number: 1, Length: 2.1, Corners: []int{1, 2, 3, 4, 5, 6}, ExpectedTime: 28.2},
			{Number: 2, Length: 2.0, Corners: []int{7, 8, 9, 10, 11, 12}, ExpectedTime: 27.8},
			{Number: 3, Length: 1.791, Corners: []int{13, 14, 15, 16, 17, 18}, ExpectedTime: 29.3},
		},
		Corners: []model.Corner{
			corner(1, "Abbey", model.CornerFast, 300, 280, 7, true, 2.5),
			corner(2, "Farm Curve", model.CornerFast, 280, 260, 6, false, 2.1),
			corner(3, "Village", model.CornerMedium, 220, 180, 5, true, 2.8),
			corner(4, "The Loop", model.CornerSlow, 160, 120, 3, true, 3.1),
			corner(5, "Aintree", model.CornerMedium, 200, 170, 4, false, 2.3),
			corner(6, "Wellington Straight", model.CornerFast, 320, 310, 8, false, 1.1),
			corner(7, "Brooklands", model.CornerSlow, 180, 140, 4, true, 2.9),
			corner(8, "Luffield", model.CornerSlow, 140, 110, 3, true, 3.2),
			corner(9, "Woodcote", model.CornerFast, 280, 250, 6, false, 1.8),
			corner(10, "Copse", model.CornerFast, 310, 290, 7, false, 2.2),
		},
	},
	{
		Name:      "Monza",
		Length:    5.793,
		Turns:     11,
		LapRecord: 79.119,
		Sectors: []model.Sector{
			{Number: 1, Length: 2.2, Corners: []int{1, 2, 3, 4}, ExpectedTime: 25.8},
			{Number: 2, Length: 1.8, Corners: []int{5, 6, 7}, ExpectedTime: 24.2},
			{Number: 3, Length: 1.793, Corners: []int{8, 9, 10, 11}, ExpectedTime: 29.1},
		},
		Corners: []model.Corner{
			corner(1, "Prima Variante", model.CornerSlow, 340, 120, 2, true, 4.2),
			corner(2, "Seconda Variante", model.CornerSlow, 280, 140, 3, true, 3.8),
			corner(3, "Lesmo 1", model.CornerMedium, 220, 180, 4, true, 2.5),
			corner(4, "Lesmo 2", model.CornerMedium, 200, 160, 4, false, 2.3),
			corner(5, "Ascari", model.CornerMedium, 240, 180, 5, true, 2.7),
			corner(6, "Parabolica", model.CornerFast, 320, 280, 6, true, 2.1),
		},
	},
	{
		Name:      "Spa-Francorchamps",
		Length:    7.004,
		Turns:     19,
		LapRecord: 103.003,
		Sectors: []model.Sector{
			{Number: 1, Length: 2.8, Corners: []int{1, 2, 3, 4, 5, 6}, ExpectedTime: 32.1},
			{Number: 2, Length: 2.2, Corners: []int{7, 8, 9, 10, 11, 12}, ExpectedTime: 28.9},
			{Number: 3, Length: 2.004, Corners: []int{13, 14, 15, 16, 17, 18, 19}, ExpectedTime: 42.0},
		},
		Corners: []model.Corner{
			corner(1, "La Source", model.CornerSlow, 280, 120, 2, true, 3.5),
			corner(2, "Eau Rouge", model.CornerFast, 300, 320, 7, false, 3.8),
			corner(3, "Raidillon", model.CornerFast, 320, 310, 8, false, 2.9),
			corner(4, "Les Combes", model.CornerMedium, 280, 200, 5, true, 2.4),
			corner(5, "Malmedy", model.CornerFast, 250, 230, 6, false, 1.8),
			corner(6, "Rivage", model.CornerMedium, 200, 160, 4, true, 2.6),
			corner(7, "Pouhon", model.CornerFast, 240, 220, 5, false, 2.2),
			corner(8, "Fagnes", model.CornerFast, 280, 260, 6, false, 1.9),
			corner(9, "Stavelot", model.CornerFast, 260, 240, 6, false, 2.0),
			corner(10, "Bus Stop", model.CornerSlow, 200, 120, 3, true, 3.1),
		},
	},
	{
		Name:      "Buddh International Circuit",
		Length:    5.125,
		Turns:     16,
		LapRecord: 85.249,
		Sectors: []model.Sector{
			{Number: 1, Length: 1.8, Corners: []int{1, 2, 3, 4, 5}, ExpectedTime: 26.5},
			{Number: 2, Length: 1.7, Corners: []int{6, 7, 8, 9, 10}, ExpectedTime: 25.8},
			{Number: 3, Length: 1.625, Corners: []int{11, 12, 13, 14, 15, 16}, ExpectedTime: 32.9},
		},
		Corners: []model.Corner{
			corner(1, "Turn 1", model.CornerSlow, 320, 140, 3, true, 3.8),
			corner(2, "Turn 2", model.CornerMedium, 180, 160, 4, false, 2.1),
			corner(3, "Turn 3", model.CornerFast, 280, 260, 6, false, 1.9),
			corner(4, "Turn 4", model.CornerMedium, 220, 180, 5, true, 2.4),
			corner(5, "Turn 5", model.CornerSlow, 160, 120, 3, true, 2.8),
			corner(6, "Turn 6", model.CornerFast, 300, 280, 7, false, 1.7),
			corner(7, "Turn 7", model.CornerMedium, 240, 200, 5, true, 2.3),
			corner(8, "Turn 8", model.CornerSlow, 180, 140, 4, true, 2.9),
			corner(9, "Turn 9", model.CornerFast, 260, 240, 6, false, 1.8),
			corner(10, "Turn 10-11", model.CornerMedium, 200, 170, 4, true, 2.5),
			corner(11, "Turn 12", model.CornerSlow, 160, 120, 3, true, 3.0),
			corner(12, "Turn 13", model.CornerMedium, 180, 150, 4, false, 2.2),
			corner(13, "Turn 14", model.CornerFast, 280, 260, 6, false, 1.9),
			corner(14, "Turn 15", model.CornerMedium, 220, 180, 5, true, 2.4),
			corner(15, "Turn 16", model.CornerFast, 300, 280, 7, false, 1.6),
		},
	},
}

func corner(
	num int, name string, ct model.CornerType,
	entry, exit float64, gear int, braking bool, g float64,
) model.Corner {
	return model.Corner{
		Number: num, Name: name, Type: ct,
		EntrySpeed: entry, ExitSpeed: exit, Gear: gear,
		BrakingZone: braking, GForceExpected: g,
	}
}
