package utils

import (
	"fmt"
	"math/rand"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

var digits = "0123456789"

func GenerateRandomOTP() string {
	otp := make([]byte, 6)
	for i := range otp {
		otp[i] = digits[rand.Intn(len(digits))]
	}
	return string(otp)
}

var passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

func GenerateRandomPassword(length int) string {
	password := make([]byte, length)
	for i := range password {
		password[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(password)
}

var firstNames = []string{
	"Amit", "Priya", "Rahul", "Sneha", "Vikram", "Anjali", "Ravi", "Pooja",
	"Suresh", "Kavita", "Arjun", "Neha", "Manoj", "Divya", "Sanjay", "Meera",
}

func GenerateRandomDriver() *domain.Driver {
	hours := make([]float64, 7)
	for i := range hours {
		hours[i] = float64(rand.Intn(11)) // 0..10 hours per day
	}

	return &domain.Driver{
		Name:              fmt.Sprintf("%s %c.", firstNames[rand.Intn(len(firstNames))], 'A'+rune(rand.Intn(26))),
		CurrentShiftHours: float64(rand.Intn(7)),
		Past7DayHours:     hours,
	}
}

var trafficLevels = []domain.TrafficLevel{
	domain.TrafficLow,
	domain.TrafficMedium,
	domain.TrafficHigh,
}

func GenerateRandomRoute(routeID int64) *domain.Route {
	return &domain.Route{
		RouteID:      routeID,
		DistanceKm:   float64(rand.Intn(25) + 1),
		TrafficLevel: trafficLevels[rand.Intn(len(trafficLevels))],
		BaseTimeMin:  float64(rand.Intn(110) + 10),
	}
}

func GenerateRandomOrder(orderID int64, routeIDs []int64) *domain.Order {
	return &domain.Order{
		OrderID:      orderID,
		ValueRs:      float64(rand.Intn(2901) + 100), // 100..3000 Rs
		RouteID:      routeIDs[rand.Intn(len(routeIDs))],
		DeliveryTime: fmt.Sprintf("%02d:%02d", rand.Intn(24), rand.Intn(60)),
	}
}
