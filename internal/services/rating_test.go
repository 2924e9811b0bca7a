package services

import (
	"errors"
	"math"
	"testing"

	"aniverse/internal/models"
)

func TestRatingAverage(t *testing.T) {
	conn := newTestDB(t)
	svc := NewRatingService(conn)
	anime := createAnime(t, conn, "Cowboy Bebop")
	u1 := createUser(t, conn, "alice")
	u2 := createUser(t, conn, "bob")

	if _, err := svc.Submit(u1.ID, anime.ID, 7); err != nil {
		t.Fatalf("submit 7: %v", err)
	}
	if _, err := svc.Submit(u2.ID, anime.ID, 9); err != nil {
		t.Fatalf("submit 9: %v", err)
	}

	var reloaded models.Anime
	conn.First(&reloaded, anime.ID)
	if math.Abs(reloaded.AverageRating-8.0) > 1e-9 {
		t.Fatalf("average = %v, want 8.0", reloaded.AverageRating)
	}
}

func TestRatingUpsert(t *testing.T) {
	conn := newTestDB(t)
	svc := NewRatingService(conn)
	anime := createAnime(t, conn, "Cowboy Bebop")
	user := createUser(t, conn, "alice")

	first, err := svc.Submit(user.ID, anime.ID, 7)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := svc.Submit(user.ID, anime.ID, 5)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if first != second {
		t.Fatalf("resubmit created new row: %d != %d", first, second)
	}

	var count int64
	conn.Model(&models.Rating{}).Where("user_id = ? AND anime_id = ?", user.ID, anime.ID).Count(&count)
	if count != 1 {
		t.Fatalf("rating rows = %d, want 1", count)
	}

	var reloaded models.Anime
	conn.First(&reloaded, anime.ID)
	if math.Abs(reloaded.AverageRating-5.0) > 1e-9 {
		t.Fatalf("average after update = %v, want 5.0", reloaded.AverageRating)
	}
}

func TestRatingBounds(t *testing.T) {
	conn := newTestDB(t)
	svc := NewRatingService(conn)
	anime := createAnime(t, conn, "Cowboy Bebop")
	user := createUser(t, conn, "alice")

	for _, score := range []int{0, 11, -3} {
		if _, err := svc.Submit(user.ID, anime.ID, score); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("score %d err = %v, want ErrInvalidInput", score, err)
		}
	}
	if _, err := svc.Submit(user.ID, 9999, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing anime err = %v, want ErrNotFound", err)
	}

	// 越界提交不能碰平均分
	var reloaded models.Anime
	conn.First(&reloaded, anime.ID)
	if reloaded.AverageRating != 0 {
		t.Fatalf("average = %v, want 0", reloaded.AverageRating)
	}
}

func TestRatingGetAbsent(t *testing.T) {
	conn := newTestDB(t)
	svc := NewRatingService(conn)
	anime := createAnime(t, conn, "Cowboy Bebop")
	user := createUser(t, conn, "alice")

	rating, err := svc.Get(user.ID, anime.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rating != nil {
		t.Fatalf("rating = %+v, want nil", rating)
	}
}
