package models

// RecentScan is one line of the recent-scans feed returned by the stats
// webhook.
type RecentScan struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email,omitempty"`
	Timestamp string `json:"timestamp"`
	Day       string `json:"day"`
}

type StatsByDay struct {
	J1 int `json:"J1"`
	J2 int `json:"J2"`
	J3 int `json:"J3"`
}

type StatsCounters struct {
	TotalRegistered int        `json:"totalRegistered"`
	TotalCheckedIn  int        `json:"totalCheckedIn"`
	TodayCheckedIn  int        `json:"todayCheckedIn"`
	ByDay           StatsByDay `json:"byDay"`
}

// StatsSnapshot is the stats webhook response. Each fetch replaces the
// previous snapshot wholesale; snapshots are never merged.
type StatsSnapshot struct {
	CurrentDay  string        `json:"currentDay"`
	Stats       StatsCounters `json:"stats"`
	RecentScans []RecentScan  `json:"recentScans"`
	GeneratedAt string        `json:"generatedAt"`
}
