package response

import "home-services/internal/data/entity"

type StatsResponse struct {
	ServicesCount    int64                          `json:"servicesCount"`
	BookingsCount    int64                          `json:"bookingsCount"`
	UsersCount       int64                          `json:"usersCount"`
	BookingsByStatus map[entity.BookingStatus]int64 `json:"bookingsByStatus"`
}

type HealthResponse struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}
