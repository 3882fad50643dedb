package state

import (
	"time"

	"xeghep/internal/domain"
)

// Seed returns the demo data a fresh installation starts with. Dates are
// resolved relative to now.
func Seed(now time.Time) Collections {
	today := now.Format(domain.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)

	return Collections{
		Drivers: []domain.Driver{
			{ID: "d1", Name: "Nguyễn Văn Hùng", Phone: "0912345678"},
			{ID: "d2", Name: "Trần Tuấn Anh", Phone: "0987654321"},
			{ID: "d3", Name: "Lê Thị Mai", Phone: "0909090909"},
		},
		Vehicles: []domain.Vehicle{
			{ID: "v1", Model: "Toyota Innova 2022", Type: "7 chỗ", LicensePlate: "93A-123.45"},
			{ID: "v2", Model: "Mazda CX-5", Type: "5 chỗ", LicensePlate: "93A-567.89"},
			{ID: "v3", Model: "Kia Sedona", Type: "7 chỗ", LicensePlate: "51H-999.99"},
			{ID: "v4", Model: "Hyundai Accent", Type: "4 chỗ", LicensePlate: "60A-111.22"},
		},
		Rides: []domain.Ride{
			{
				ID: "1", DriverName: "Nguyễn Văn Hùng", DriverPhone: "0912345678", DriverRating: 4.8,
				Origin: "Bình Phước", Destination: "Trấn Biên", Date: today, Time: "07:00",
				Price: 150000, SeatsAvailable: 3, TotalSeats: 7,
				CarModel: "Toyota Innova 2022", LicensePlate: "93A-123.45", Type: domain.RideTypeShared,
				Description: "Xe đi từ Đồng Xoài về Trấn Biên, Biên Hòa. Nhận gửi đồ.",
			},
			{
				ID: "2", DriverName: "Trần Tuấn Anh", DriverPhone: "0987654321", DriverRating: 5.0,
				Origin: "Bình Phước", Destination: "Sài Gòn", Date: today, Time: "09:30",
				Price: 200000, SeatsAvailable: 2, TotalSeats: 4,
				CarModel: "Mazda CX-5", LicensePlate: "93A-567.89", Type: domain.RideTypeConvenient,
				Description: "Tiện chuyến về Sài Gòn, xe đẹp, lái lụa.",
			},
			{
				ID: "3", DriverName: "Lê Thị Mai", DriverPhone: "0909090909", DriverRating: 4.9,
				Origin: "Sài Gòn", Destination: "Bình Phước", Date: tomorrow, Time: "14:00",
				Price: 180000, SeatsAvailable: 4, TotalSeats: 7,
				CarModel: "Kia Sedona", LicensePlate: "51H-999.99", Type: domain.RideTypeShared,
				Description: "Xe rộng rãi, đón trả tận nơi tại các quận trung tâm.",
			},
			{
				ID: "4", DriverName: "Phạm Văn Dũng", DriverPhone: "0911223344", DriverRating: 4.7,
				Origin: "Trấn Biên", Destination: "Bình Phước", Date: today, Time: "16:00",
				Price: 140000, SeatsAvailable: 1, TotalSeats: 4,
				CarModel: "Hyundai Accent", LicensePlate: "60A-111.22", Type: domain.RideTypeConvenient,
				Description: "Về Đồng Xoài, Bình Phước. Còn 1 ghế.",
			},
			{
				ID: "5", DriverName: "Hoàng Long", DriverPhone: "0888999111", DriverRating: 5.0,
				Origin: "Sài Gòn", Destination: "Bình Phước", Date: tomorrow, Time: "08:00",
				Price: 900000, SeatsAvailable: 4, TotalSeats: 4,
				CarModel: "VinFast Lux A", LicensePlate: "51G-888.88", Type: domain.RideTypePrivate,
				Description: "Nhận bao xe đi Bình Phước.",
			},
		},
		Bookings: []domain.Booking{
			{
				ID: "b1", RideID: "1", PassengerName: "Nguyễn Thị Cúc", PassengerPhone: "0933333333",
				Seats: 2, Status: domain.BookingStatusPending, CreatedAt: now,
				RideSnapshot: domain.RideSnapshot{
					Origin: "Bình Phước", Destination: "Trấn Biên", Date: today, Time: "07:00",
					Price: 150000, DriverName: "Nguyễn Văn Hùng",
				},
			},
			{
				ID: "b2", RideID: "2", PassengerName: "Lê Văn Tám", PassengerPhone: "0944444444",
				Seats: 1, Status: domain.BookingStatusConfirmed, CreatedAt: now.Add(-time.Hour),
				RideSnapshot: domain.RideSnapshot{
					Origin: "Bình Phước", Destination: "Sài Gòn", Date: today, Time: "09:30",
					Price: 200000, DriverName: "Trần Tuấn Anh",
				},
			},
		},
		Requests: []domain.RideRequest{
			{
				ID: "r1", PassengerName: "Hoàng Thị Lan", PassengerPhone: "0911112222",
				Origin: "Bù Đăng, Bình Phước", Destination: "Sân bay Tân Sơn Nhất",
				Date: today, Time: "05:00", Seats: 4, Note: "Cần xe cốp rộng, nhà có em bé",
				Status: domain.RequestStatusPending, CreatedAt: now.Add(-2 * time.Hour),
			},
		},
	}
}

// PopularLocations are suggested origins and destinations for forms.
var PopularLocations = []string{
	"Bình Phước", "Trấn Biên", "Sài Gòn", "Biên Hòa", "Đồng Xoài", "Bình Dương",
}
