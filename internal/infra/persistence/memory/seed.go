package memory

import (
	"context"
	"log/slog"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Fixed IDs keep demo scripts and API examples stable across restarts.
var (
	seedVenueKlein   = uuid.MustParse("b2000000-0000-0000-0000-000000000001")
	seedVenue360     = uuid.MustParse("b2000000-0000-0000-0000-000000000002")
	seedVenueSortie  = uuid.MustParse("b2000000-0000-0000-0000-000000000003")
	seedVenueBabylon = uuid.MustParse("b2000000-0000-0000-0000-000000000004")
	seedVenueArkaoda = uuid.MustParse("b2000000-0000-0000-0000-000000000005")

	seedUserAyse  = uuid.MustParse("c3000000-0000-0000-0000-000000000001")
	seedUserKerem = uuid.MustParse("c3000000-0000-0000-0000-000000000002")
	seedUserLeyla = uuid.MustParse("c3000000-0000-0000-0000-000000000003")
)

// SeedStores holds the repositories the seeder writes into.
type SeedStores struct {
	Users         repository.UserRepository
	Venues        repository.VenueRepository
	Events        repository.EventRepository
	Menus         repository.MenuRepository
	Checkins      repository.CheckinRepository
	Notifications repository.NotificationRepository
}

// Seed loads the curated Istanbul demo data set: venues with hours, events,
// menus, a few registered users already checked in, and a welcome
// notification each. Running it twice is harmless since all IDs are fixed
// and the stores upsert by ID.
func Seed(ctx context.Context, stores SeedStores, logger *slog.Logger) error {
	now := time.Now()

	weekendHours := map[string]entity.OpenHours{
		"thursday": {Open: "21:00", Close: "02:00"},
		"friday":   {Open: "22:00", Close: "04:00"},
		"saturday": {Open: "22:00", Close: "04:00"},
	}
	allWeekHours := map[string]entity.OpenHours{
		"monday":    {Open: "18:00", Close: "01:00"},
		"tuesday":   {Open: "18:00", Close: "01:00"},
		"wednesday": {Open: "18:00", Close: "01:00"},
		"thursday":  {Open: "18:00", Close: "02:00"},
		"friday":    {Open: "18:00", Close: "03:00"},
		"saturday":  {Open: "18:00", Close: "03:00"},
		"sunday":    {Open: "18:00", Close: "00:00"},
	}

	venues := []*entity.Venue{
		{
			ID: seedVenueKlein, Name: "Klein", District: "Sisli",
			Address: "Harbiye Mah. Taskisla Cad. No:8", Latitude: 41.0469, Longitude: 28.9880,
			Type: "club", PriceTier: 3,
			MusicGenres: []string{"techno", "house"},
			Features:    []string{"garden", "smoking area", "late license"},
			Hours:       weekendHours, IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedVenue360, Name: "360 Istanbul", District: "Beyoglu",
			Address: "Istiklal Cad. No:163 K:8", Latitude: 41.0336, Longitude: 28.9777,
			Type: "rooftop", PriceTier: 3,
			MusicGenres: []string{"house", "pop"},
			Features:    []string{"view", "restaurant", "terrace"},
			Hours:       allWeekHours, IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedVenueSortie, Name: "Sortie", District: "Besiktas",
			Address: "Muallim Naci Cad. No:141, Kurucesme", Latitude: 41.0563, Longitude: 29.0336,
			Type: "club", PriceTier: 3,
			MusicGenres: []string{"pop", "r&b"},
			Features:    []string{"bosphorus view", "outdoor", "restaurant"},
			Hours:       weekendHours, IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedVenueBabylon, Name: "Babylon", District: "Sisli",
			Address: "Bomontiada, Birahane Sok. No:1", Latitude: 41.0541, Longitude: 28.9830,
			Type: "live music", PriceTier: 2,
			MusicGenres: []string{"indie", "jazz", "electronic"},
			Features:    []string{"live stage", "courtyard"},
			Hours:       allWeekHours, IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedVenueArkaoda, Name: "Arkaoda", District: "Kadikoy",
			Address: "Kadife Sok. No:18", Latitude: 40.9884, Longitude: 29.0270,
			Type: "bar", PriceTier: 1,
			MusicGenres: []string{"alternative", "electronic"},
			Features:    []string{"garden", "dj booth"},
			Hours:       allWeekHours, IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, v := range venues {
		if err := stores.Venues.Create(ctx, v); err != nil {
			return errors.Wrapf(err, "seed venue %s", v.Name)
		}
	}

	events := []*entity.Event{
		{
			ID: uuid.MustParse("d4000000-0000-0000-0000-000000000001"), VenueID: seedVenueKlein,
			Title: "Detroit Night", Description: "Guest DJ set, doors 23:00.",
			Date: now.AddDate(0, 0, 2), StartTime: "23:00", EndTime: "04:00", IsActive: true, CreatedAt: now,
		},
		{
			ID: uuid.MustParse("d4000000-0000-0000-0000-000000000002"), VenueID: seedVenueBabylon,
			Title: "Jazz Wednesdays", Description: "Weekly live quartet.",
			Date: now.AddDate(0, 0, 1), StartTime: "21:00", EndTime: "00:00", IsActive: true, CreatedAt: now,
		},
		{
			ID: uuid.MustParse("d4000000-0000-0000-0000-000000000003"), VenueID: seedVenue360,
			Title: "Sunset Sessions", Description: "Rooftop house warm-up from sunset.",
			Date: now.AddDate(0, 0, 3), StartTime: "19:00", EndTime: "23:00", IsActive: true, CreatedAt: now,
		},
	}
	for _, e := range events {
		if err := stores.Events.Create(ctx, e); err != nil {
			return errors.Wrapf(err, "seed event %s", e.Title)
		}
	}

	menu := []*entity.MenuItem{
		{ID: uuid.MustParse("e5000000-0000-0000-0000-000000000001"), VenueID: seedVenueKlein, Name: "Gin Basil Smash", Category: "cocktails", Price: 520, Available: true, CreatedAt: now},
		{ID: uuid.MustParse("e5000000-0000-0000-0000-000000000002"), VenueID: seedVenueKlein, Name: "Local Draft", Category: "beers", Price: 260, Available: true, CreatedAt: now},
		{ID: uuid.MustParse("e5000000-0000-0000-0000-000000000003"), VenueID: seedVenueArkaoda, Name: "House Negroni", Category: "cocktails", Price: 380, Available: true, CreatedAt: now},
		{ID: uuid.MustParse("e5000000-0000-0000-0000-000000000004"), VenueID: seedVenue360, Name: "Signature Spritz", Category: "cocktails", Price: 590, Available: true, CreatedAt: now},
	}
	for _, item := range menu {
		if err := stores.Menus.Create(ctx, item); err != nil {
			return errors.Wrapf(err, "seed menu item %s", item.Name)
		}
	}

	users := []*entity.User{
		{
			ID: seedUserAyse, Phone: "+905550000001", Name: "Ayse", Age: 25, Gender: entity.GenderFemale,
			Interests: []string{"techno", "cocktails", "art"}, Tier: entity.TierPremium,
			ProfileComplete: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedUserKerem, Phone: "+905550000002", Name: "Kerem", Age: 28, Gender: entity.GenderMale,
			Interests: []string{"house", "craft beer", "football"}, Tier: entity.TierFree,
			ProfileComplete: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: seedUserLeyla, Phone: "+905550000003", Name: "Leyla", Age: 24, Gender: entity.GenderFemale,
			Interests: []string{"jazz", "wine", "cinema"}, Tier: entity.TierFree,
			ProfileComplete: true, CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, u := range users {
		if err := stores.Users.Create(ctx, u); err != nil {
			return errors.Wrapf(err, "seed user %s", u.Name)
		}
		welcome := &entity.Notification{
			ID:        uuid.New(),
			UserID:    u.ID,
			Title:     "Welcome to Pulse",
			Message:   "Check in at a venue tonight to see who else is out.",
			Type:      entity.NotificationAlert,
			CreatedAt: now,
		}
		if err := stores.Notifications.Create(ctx, welcome); err != nil {
			return errors.Wrapf(err, "seed welcome notification for %s", u.Name)
		}
	}

	// Two of the seed users start the demo already out at Klein.
	checkins := []*entity.Checkin{
		{ID: uuid.New(), UserID: seedUserAyse, VenueID: seedVenueKlein, CheckedInAt: now.Add(-45 * time.Minute), Visible: true},
		{ID: uuid.New(), UserID: seedUserKerem, VenueID: seedVenueKlein, CheckedInAt: now.Add(-20 * time.Minute), Visible: true},
	}
	for _, c := range checkins {
		if _, _, err := stores.Checkins.Open(ctx, c); err != nil {
			return errors.Wrap(err, "seed checkin")
		}
	}

	logger.Info("demo data seeded",
		slog.Int("venues", len(venues)),
		slog.Int("events", len(events)),
		slog.Int("menu_items", len(menu)),
		slog.Int("users", len(users)),
	)

	return nil
}
