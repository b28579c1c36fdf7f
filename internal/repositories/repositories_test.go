package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user := &models.User{Email: email, Name: "Test User"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func strPtr(s string) *string { return &s }
func iPtr(i int) *int         { return &i }

func TestUserRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := &models.User{Email: "test@example.com", Name: "Test User"}

		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if user.ID == "" {
			t.Error("user ID should be set after creation")
		}
		if user.Sequence == 0 {
			t.Error("user sequence should be set after creation")
		}
	})

	t.Run("Create duplicate email", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		if err := repo.Create(&models.User{Email: "dup@example.com", Name: "First"}); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		err := repo.Create(&models.User{Email: "dup@example.com", Name: "Second"})
		if !errors.Is(err, shared.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("Get and GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := seedUser(t, db, "get@example.com")

		retrieved, err := repo.Get(user.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if retrieved.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, retrieved.Email)
		}

		byEmail, err := repo.GetByEmail("get@example.com")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("expected ID %s, got %s", user.ID, byEmail.ID)
		}

		if _, err := repo.Get("missing"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Delete is soft", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewUserRepository(db)
		user := seedUser(t, db, "gone@example.com")

		if err := repo.Delete(user.ID); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := repo.Get(user.ID); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("deleted user should not be retrievable, got %v", err)
		}

		list, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		for _, u := range list {
			if u.ID == user.ID {
				t.Error("deleted user should not appear in list")
			}
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", user.ID).Scan(&count); err != nil {
			t.Fatalf("failed to count users: %v", err)
		}
		if count != 1 {
			t.Error("soft delete should keep the row")
		}
	})
}

func TestCatalogGameRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCatalogGameRepository(db)
		game, err := repo.Create(models.SharedGameData{
			Title:      "Settlers of Catan",
			Year:       iPtr(1995),
			MinPlayers: iPtr(3),
			MaxPlayers: iPtr(4),
			Categories: []string{"strategy", "trading"},
		})
		if err != nil {
			t.Fatalf("failed to create catalog game: %v", err)
		}

		if game.ID == "" {
			t.Error("game ID should be set after creation")
		}
		if game.NormalizedTitle != "settlers of catan" {
			t.Errorf("expected normalized title, got %q", game.NormalizedTitle)
		}

		retrieved, err := repo.Get(game.ID)
		if err != nil {
			t.Fatalf("failed to get catalog game: %v", err)
		}
		if retrieved.Title != "Settlers of Catan" {
			t.Errorf("expected original casing preserved, got %q", retrieved.Title)
		}
		if len(retrieved.Categories) != 2 {
			t.Errorf("expected categories roundtrip, got %v", retrieved.Categories)
		}
		if retrieved.Year == nil || *retrieved.Year != 1995 {
			t.Error("expected year roundtrip")
		}
	})

	t.Run("Create duplicate normalized title", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCatalogGameRepository(db)
		if _, err := repo.Create(models.SharedGameData{Title: "Catan"}); err != nil {
			t.Fatalf("failed to create catalog game: %v", err)
		}

		// Different casing and spacing, same normalized title
		_, err := repo.Create(models.SharedGameData{Title: "  CATAN "})
		if !errors.Is(err, shared.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single catalog row, got %d", count)
		}
	})

	t.Run("Create invalid title", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCatalogGameRepository(db)
		if _, err := repo.Create(models.SharedGameData{Title: "   "}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Titles", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCatalogGameRepository(db)
		for _, title := range []string{"Catan", "Azul", "Wingspan"} {
			if _, err := repo.Create(models.SharedGameData{Title: title}); err != nil {
				t.Fatalf("failed to create catalog game: %v", err)
			}
		}

		titles, err := repo.Titles()
		if err != nil {
			t.Fatalf("failed to list titles: %v", err)
		}
		if len(titles) != 3 {
			t.Errorf("expected 3 titles, got %d", len(titles))
		}
		for _, ct := range titles {
			if ct.ID == "" || ct.Title == "" {
				t.Errorf("expected populated title entry, got %+v", ct)
			}
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCatalogGameRepository(db)
		if _, err := repo.Get("missing"); !errors.Is(err, shared.ErrGameNotFound) {
			t.Errorf("expected ErrGameNotFound, got %v", err)
		}
	})
}

func TestLibraryGameRepository(t *testing.T) {
	seedCatalog := func(t *testing.T, db *sql.DB, title string) *models.CatalogGame {
		t.Helper()
		game, err := NewCatalogGameRepository(db).Create(models.SharedGameData{Title: title})
		if err != nil {
			t.Fatalf("failed to seed catalog game: %v", err)
		}
		return game
	}

	t.Run("Ready", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLibraryGameRepository(db)
		ready, err := repo.Ready()
		if err != nil {
			t.Fatalf("failed to check readiness: %v", err)
		}
		if !ready {
			t.Error("expected library_games to exist after migrations")
		}
	})

	t.Run("Ready without schema", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		ready, err := NewLibraryGameRepository(db).Ready()
		if err != nil {
			t.Fatalf("failed to check readiness: %v", err)
		}
		if ready {
			t.Error("expected not ready before migrations")
		}
	})

	t.Run("Create and ListByUser", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := seedUser(t, db, "lib@example.com")
		game := seedCatalog(t, db, "Catan")

		repo := NewLibraryGameRepository(db)
		entry := &models.LibraryGame{
			UserID:    user.ID,
			GameID:    game.ID,
			PlayCount: 7,
			Rating:    iPtr(9),
			Review:    strPtr("house favorite"),
		}

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create library entry: %v", err)
		}
		if entry.ID == "" {
			t.Error("entry ID should be set after creation")
		}

		entries, err := repo.ListByUser(user.ID)
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].PlayCount != 7 {
			t.Errorf("expected play count 7, got %d", entries[0].PlayCount)
		}
		if entries[0].Rating == nil || *entries[0].Rating != 9 {
			t.Error("expected rating roundtrip")
		}
		if entries[0].Review == nil || *entries[0].Review != "house favorite" {
			t.Error("expected review roundtrip")
		}
	})

	t.Run("Create duplicate pair", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := seedUser(t, db, "dup@example.com")
		game := seedCatalog(t, db, "Catan")

		repo := NewLibraryGameRepository(db)
		if err := repo.Create(&models.LibraryGame{UserID: user.ID, GameID: game.ID}); err != nil {
			t.Fatalf("failed to create library entry: %v", err)
		}

		err := repo.Create(&models.LibraryGame{UserID: user.ID, GameID: game.ID, PlayCount: 3})
		if !errors.Is(err, shared.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single library row, got %d", count)
		}
	})

	t.Run("same game for two users", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		alice := seedUser(t, db, "alice@example.com")
		bob := seedUser(t, db, "bob@example.com")
		game := seedCatalog(t, db, "Catan")

		repo := NewLibraryGameRepository(db)
		if err := repo.Create(&models.LibraryGame{UserID: alice.ID, GameID: game.ID}); err != nil {
			t.Fatalf("failed to create alice's entry: %v", err)
		}
		if err := repo.Create(&models.LibraryGame{UserID: bob.ID, GameID: game.ID}); err != nil {
			t.Fatalf("failed to create bob's entry: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 library rows, got %d", count)
		}
	})
}

func TestLegacyGameRepository(t *testing.T) {
	seedLegacy := func(t *testing.T, db *sql.DB, id, title string, userID *string) {
		t.Helper()
		now := time.Now().UTC()
		_, err := db.Exec(
			"INSERT INTO games (id, user_id, title, play_count, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)",
			id, userID, title, now, now,
		)
		if err != nil {
			t.Fatalf("failed to seed legacy game: %v", err)
		}
	}

	t.Run("HasLegacyShape", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewLegacyGameRepository(db)
		has, err := repo.HasLegacyShape()
		if err != nil {
			t.Fatalf("failed to check legacy shape: %v", err)
		}
		if !has {
			t.Error("expected legacy shape after migrations")
		}
	})

	t.Run("HasLegacyShape after table drop", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := db.Exec("DROP TABLE games"); err != nil {
			t.Fatalf("failed to drop games table: %v", err)
		}

		has, err := NewLegacyGameRepository(db).HasLegacyShape()
		if err != nil {
			t.Fatalf("failed to check legacy shape: %v", err)
		}
		if has {
			t.Error("expected no legacy shape without games table")
		}
	})

	t.Run("ListOrderedByTitle", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		user := seedUser(t, db, "legacy@example.com")
		seedLegacy(t, db, "g1", "Wingspan", &user.ID)
		seedLegacy(t, db, "g2", "Azul", &user.ID)
		seedLegacy(t, db, "g3", "Catan", nil)

		repo := NewLegacyGameRepository(db)
		games, err := repo.ListOrderedByTitle()
		if err != nil {
			t.Fatalf("failed to list legacy games: %v", err)
		}

		if len(games) != 3 {
			t.Fatalf("expected 3 games, got %d", len(games))
		}
		want := []string{"Azul", "Catan", "Wingspan"}
		for i, title := range want {
			if games[i].Title != title {
				t.Errorf("expected %s at index %d, got %s", title, i, games[i].Title)
			}
		}
		if games[1].HasUser() {
			t.Error("expected Catan row to have no user")
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 3 {
			t.Errorf("expected count 3, got %d", count)
		}
	})
}
