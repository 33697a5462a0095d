// Seeds a running appointment-service with sample bookings, for local
// dashboard and slot-grid testing.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type seedBooking struct {
	ClientName  string `json:"clientName"`
	Reason      string `json:"reason"`
	DesiredTime string `json:"desiredTime"`
	Notes       string `json:"notes,omitempty"`
}

var sampleBookings = []seedBooking{
	{ClientName: "Ana Gomez", Reason: "Checkup", DesiredTime: "09:00"},
	{ClientName: "Bruno Diaz", Reason: "Cleaning", DesiredTime: "09:30", Notes: "prefers mornings"},
	{ClientName: "Carla Ruiz", Reason: "Extraction", DesiredTime: "10:30"},
	{ClientName: "Diego Paz", Reason: "Checkup", DesiredTime: "11:00"},
	{ClientName: "Elena Soto", Reason: "Whitening", DesiredTime: "14:00"},
	{ClientName: "Franco Luna", Reason: "Follow-up", DesiredTime: "15:30", Notes: "post-op control"},
	{ClientName: "Gloria Vega", Reason: "Consultation", DesiredTime: "17:00"},
}

func main() {
	var (
		baseURL = flag.String("base-url", getenv("BASE_URL", "http://localhost:8080"), "appointment-service base url")
		count   = flag.Int("count", len(sampleBookings), "number of sample bookings to create")
	)
	flag.Parse()

	if *count < 1 || *count > len(sampleBookings) {
		fatal(fmt.Sprintf("count must be 1..%d", len(sampleBookings)))
	}

	endpoint := strings.TrimRight(*baseURL, "/") + "/api/v1/appointments"
	created := 0
	for _, booking := range sampleBookings[:*count] {
		payload, err := json.Marshal(booking)
		if err != nil {
			fatal(err.Error())
		}
		resp, err := http.Post(endpoint, "application/json", bytes.NewReader(payload))
		if err != nil {
			fatal(err.Error())
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			fatal(fmt.Sprintf("create %s: status=%d", booking.ClientName, resp.StatusCode))
		}
		created++
	}

	fmt.Printf("created=%d\n", created)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
