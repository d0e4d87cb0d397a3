package service

import (
	"context"
	"errors"
	"testing"

	hr "house_rental"

	"github.com/google/uuid"
)

func TestAmenityService_CreateListDelete(t *testing.T) {
	store := newMemStore()
	svc := NewAmenityService(store.repos().Amenities)
	ctx := context.Background()

	if _, err := svc.Create(ctx, AmenityInput{Name: "  "}); !errors.Is(err, hr.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}

	wifi, err := svc.Create(ctx, AmenityInput{Name: " WiFi ", Description: "fast"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wifi.Name != "WiFi" {
		t.Fatalf("name not trimmed: %q", wifi.Name)
	}

	all, _ := svc.List(ctx)
	if len(all) != 1 {
		t.Fatalf("List = %d, want 1", len(all))
	}

	deleted, err := svc.Delete(ctx, wifi.ID)
	if err != nil || deleted.ID != wifi.ID {
		t.Fatalf("Delete = %+v, %v", deleted, err)
	}
	if _, err := svc.Delete(ctx, wifi.ID); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Delete(ctx, "bogus"); !errors.Is(err, hr.ErrNotFound) {
		t.Fatalf("malformed id: expected ErrNotFound, got %v", err)
	}
}

func TestLocationService_Create(t *testing.T) {
	svc := NewLocationService(newMemStore().repos().Locations)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      LocationInput
		wantErr error
	}{
		{"valid", LocationInput{Address: "1 Main St", City: "Tashkent", Country: "UZ", Latitude: 41.3, Longitude: 69.2}, nil},
		{"missing city", LocationInput{Address: "1 Main St", Country: "UZ"}, hr.ErrValidation},
		{"latitude out of range", LocationInput{Address: "a", City: "b", Country: "c", Latitude: 91}, hr.ErrValidation},
		{"longitude out of range", LocationInput{Address: "a", City: "b", Country: "c", Longitude: -181}, hr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := svc.Create(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := svc.Get(ctx, l.ID)
			if err != nil || got != l {
				t.Fatalf("Get = %+v, %v; want %+v", got, err, l)
			}
		})
	}
}

func TestLocationService_GetMissing(t *testing.T) {
	svc := NewLocationService(newMemStore().repos().Locations)
	for _, id := range []string{uuid.NewString(), "x"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, hr.ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}
