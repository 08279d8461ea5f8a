package service

import (
	"fmt"
	"log"

	"parkspot/internal/db"
)

// SenderService formats and dispatches reservation notifications. Email is
// sent asynchronously so a slow provider never delays the request; SMS is
// skipped when the profile has no phone number.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendReservationEmail(profile db.Profile, res db.Reservation, status string) {
	name := profile.Name
	if name == "" {
		name = profile.Email
	}

	subject := fmt.Sprintf("Your ParkSpot reservation is %s - Spot %s", status, res.SpotID)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour parking reservation is %s.\n\n"+
			"Reservation Details:\n"+
			"Parking Complex: %s\n"+
			"Spot: %s\n"+
			"Vehicle Plate: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Duration: %s\n\n"+
			"Thank you for choosing ParkSpot.",
		name, status, res.ParkingComplex, res.SpotID, res.VehiclePlate,
		res.Date, res.Time, res.Duration,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your parking reservation is <strong>%s</strong>.</p>"+
			"<ul><li>Parking Complex: %s</li><li>Spot: %s</li><li>Vehicle Plate: %s</li>"+
			"<li>Date: %s</li><li>Time: %s</li><li>Duration: %s</li></ul>"+
			"<p>Thank you for choosing ParkSpot.</p>",
		name, status, res.ParkingComplex, res.SpotID, res.VehiclePlate,
		res.Date, res.Time, res.Duration,
	)

	go func(toEmail, toName, subj, plainBody, htmlContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subj, plainBody, htmlContent); err != nil {
			log.Printf("ALERT (async): email for reservation %s failed: %v", res.ID, err)
		}
	}(profile.Email, name, subject, plainTextBody, htmlBody)
}

func (s *SenderService) SendReservationSMS(profile db.Profile, res db.Reservation, status string) {
	if profile.Phone == "" {
		return
	}
	smsMessage := fmt.Sprintf("ParkSpot: Reservation for spot %s at %s is %s!\n%s %s, %s.\nMore details in your email.",
		res.SpotID, res.ParkingComplex, status, res.Date, res.Time, res.Duration)

	if err := SendSMS(profile.Phone, smsMessage); err != nil {
		log.Printf("ALERT: reservation %s was created, but the confirmation SMS to %s failed: %v", res.ID, profile.Phone, err)
	}
}
