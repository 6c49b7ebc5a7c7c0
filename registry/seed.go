package registry

import "globalbroadcast/models"

// SeedStations returns the stations the registry starts with.
func SeedStations() []models.Station {
	return []models.Station{
		{
			ID:        "1",
			Name:      "Global News Network",
			Channel:   "GNN",
			Position:  models.Position{Latitude: 40.7128, Longitude: -74.0060}, // New York
			Status:    models.StatusLive,
			Viewers:   2450000,
			Signal:    95,
			StreamURL: "https://www.youtube.com/watch?v=9Auq9mYxFEE",
		},
		{
			ID:        "2",
			Name:      "Europa Broadcasting",
			Channel:   "EBC",
			Position:  models.Position{Latitude: 51.5074, Longitude: -0.1278}, // London
			Status:    models.StatusLive,
			Viewers:   1800000,
			Signal:    88,
			StreamURL: "https://www.youtube.com/watch?v=pykz4W8U8eE",
		},
		{
			ID:        "3",
			Name:      "Asia Pacific Media",
			Channel:   "APM",
			Position:  models.Position{Latitude: 35.6762, Longitude: 139.6503}, // Tokyo
			Status:    models.StatusStandby,
			Viewers:   3200000,
			Signal:    92,
			StreamURL: "https://www.youtube.com/watch?v=coYw-eVU0Ks",
		},
		{
			ID:        "4",
			Name:      "Southern Cross TV",
			Channel:   "SCTV",
			Position:  models.Position{Latitude: -33.8688, Longitude: 151.2093}, // Sydney
			Status:    models.StatusLive,
			Viewers:   950000,
			Signal:    78,
			StreamURL: "https://www.youtube.com/watch?v=vOTiJkg1voo",
		},
		{
			ID:        "5",
			Name:      "Arctic Broadcasting",
			Channel:   "ABC",
			Position:  models.Position{Latitude: 64.2008, Longitude: -149.4937}, // Fairbanks
			Status:    models.StatusMaintenance,
			Viewers:   125000,
			Signal:    65,
			StreamURL: "https://www.youtube.com/watch?v=dp8PhLsUcFE",
		},
		{
			ID:        "6",
			Name:      "African Continental",
			Channel:   "ACN",
			Position:  models.Position{Latitude: -26.2041, Longitude: 28.0473}, // Johannesburg
			Status:    models.StatusLive,
			Viewers:   1200000,
			Signal:    83,
			StreamURL: "https://www.youtube.com/watch?v=NMre6IAAAiU",
		},
	}
}

// Seed returns a registry holding the seed stations.
func Seed() Registry {
	return New(SeedStations())
}
