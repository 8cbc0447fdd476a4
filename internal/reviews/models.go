package reviews

import "time"

// Domain objects webhook events are raised about. The delivery core treats
// them as opaque; they exist here as registered sender types and as the
// shapes the surrounding application publishes.

type ReviewRequest struct {
	ID        int       `json:"id"`
	Summary   string    `json:"summary"`
	Submitter string    `json:"submitter"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID              int       `json:"id"`
	ReviewRequestID int       `json:"review_request_id"`
	Reviewer        string    `json:"reviewer"`
	ShipIt          bool      `json:"ship_it"`
	CreatedAt       time.Time `json:"created_at"`
}

type Comment struct {
	ID       int    `json:"id"`
	ReviewID int    `json:"review_id"`
	Text     string `json:"text"`
}
