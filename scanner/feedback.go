package scanner

import "github.com/mzane42/clinica-scanner/models"

// Feedback tells the UI how to render an outcome: overlay color, icon and
// the haptic vibration pattern (milliseconds, vibrate/pause alternating).
type Feedback struct {
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Title     string `json:"title"`
	Vibration []int  `json:"vibration"`
}

// DetectVibration is the short buzz played on the device the moment a code
// is decoded, before the check-in round-trip.
var DetectVibration = []int{100, 50, 100}

var feedbackByStatus = map[models.ScanStatus]Feedback{
	models.StatusSuccess: {
		Color:     "#10b981",
		Icon:      "check-circle",
		Title:     "Check-in réussi",
		Vibration: []int{100, 50, 100, 50, 200},
	},
	models.StatusDuplicate: {
		Color:     "#f59e0b",
		Icon:      "clock",
		Title:     "Déjà scanné aujourd'hui",
		Vibration: []int{200, 100, 200},
	},
	models.StatusInvalid: {
		Color:     "#f43f5e",
		Icon:      "x-circle",
		Title:     "Badge non reconnu",
		Vibration: []int{500},
	},
	models.StatusError: {
		Color:     "#f43f5e",
		Icon:      "alert-triangle",
		Title:     "Erreur de connexion",
		Vibration: []int{500},
	},
}

// FeedbackFor returns the rendering config for an outcome status.
func FeedbackFor(status models.ScanStatus) Feedback {
	return feedbackByStatus[status]
}

// Classify maps a normalized check-in result onto one of the three business
// outcomes. Transport failures are classified separately as StatusError.
func Classify(result models.CheckinResult) models.ScanStatus {
	switch {
	case result.AlreadyToday:
		return models.StatusDuplicate
	case !result.Valid:
		return models.StatusInvalid
	default:
		return models.StatusSuccess
	}
}
