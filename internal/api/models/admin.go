package models

// DatasetReloadResponse reports the outcome of an admin dataset
// reload.
type DatasetReloadResponse struct {
	Segments      int       `json:"segments"`
	VehicleCounts int       `json:"vehicle_counts"`
	Observations  int       `json:"observations"`
	ReloadedAt    Timestamp `json:"reloaded_at"`
}
