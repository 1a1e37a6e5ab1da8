package models

import "github.com/tollgrid/tollgrid/internal/analysis"

// CarMatrixResponse carries the raw and conditionally scaled car
// count matrices.
type CarMatrixResponse struct {
	Matrix DistanceMatrix `json:"matrix"`
	Scaled DistanceMatrix `json:"scaled"`
}

// CarTypeCounts wraps the low/medium/high bucket counts.
type CarTypeCounts struct {
	Buckets []analysis.CarTypeCount `json:"buckets"`
}

// BusOutliers lists the record indexes with unusually high bus
// counts.
type BusOutliers struct {
	Indexes []int `json:"indexes"`
}

// TruckRoutes lists the routes with a high average truck count.
type TruckRoutes struct {
	Routes []string `json:"routes"`
}
