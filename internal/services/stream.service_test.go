package services

import (
	"testing"
	"time"

	"hostpulse/internal/models"
)

func TestStreamHubBroadcastsSnapshots(t *testing.T) {
	metrics := NewMetricsService(healthyProbe(), time.Millisecond)
	hub := NewStreamHub(metrics, 10*time.Millisecond)
	hub.Start()
	defer hub.Stop()

	client := &StreamClient{
		ID:   "test-client",
		Send: make(chan *models.Snapshot, 8),
		Done: make(chan struct{}),
	}
	hub.Register(client)

	select {
	case snap := <-client.Send:
		if snap == nil || snap.CPU == nil {
			t.Fatalf("broadcast snapshot incomplete: %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot broadcast within 2s")
	}
}

func TestStreamHubStopClosesClients(t *testing.T) {
	metrics := NewMetricsService(healthyProbe(), time.Millisecond)
	hub := NewStreamHub(metrics, time.Hour) // interval never fires in this test
	hub.Start()

	client := &StreamClient{
		ID:   "test-client",
		Send: make(chan *models.Snapshot, 1),
		Done: make(chan struct{}),
	}
	hub.Register(client)
	// Give the event loop a beat to process the registration.
	time.Sleep(10 * time.Millisecond)

	hub.Stop()

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected send channel to be closed, got a snapshot")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after Stop")
	}
}
