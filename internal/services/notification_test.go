package services

import (
	"testing"

	"aniverse/internal/models"
)

func TestMarkReadOwnership(t *testing.T) {
	conn := newTestDB(t)
	svc := NewNotificationService(conn)
	owner := createUser(t, conn, "owner")
	stranger := createUser(t, conn, "stranger")

	n := models.Notification{UserID: owner.ID, Type: models.NotificationTypeSystem, Content: "welcome"}
	if err := conn.Create(&n).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 别人的通知标不动
	ok, err := svc.MarkRead(n.ID, stranger.ID)
	if err != nil {
		t.Fatalf("mark as stranger: %v", err)
	}
	if ok {
		t.Fatal("stranger marked someone else's notification")
	}

	ok, err = svc.MarkRead(n.ID, owner.ID)
	if err != nil || !ok {
		t.Fatalf("mark as owner = %v, %v; want true, nil", ok, err)
	}

	var reloaded models.Notification
	conn.First(&reloaded, n.ID)
	if !reloaded.IsRead {
		t.Fatal("notification still unread")
	}

	// 不存在的 ID 也是 false 不报错
	ok, err = svc.MarkRead(9999, owner.ID)
	if err != nil || ok {
		t.Fatalf("missing id = %v, %v; want false, nil", ok, err)
	}
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	conn := newTestDB(t)
	svc := NewNotificationService(conn)
	owner := createUser(t, conn, "owner")

	for i := 0; i < 3; i++ {
		n := models.Notification{UserID: owner.ID, Type: models.NotificationTypeSystem, Content: "n"}
		if err := conn.Create(&n).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	read := models.Notification{UserID: owner.ID, Type: models.NotificationTypeSystem, Content: "old", IsRead: true}
	if err := conn.Create(&read).Error; err != nil {
		t.Fatalf("seed read: %v", err)
	}

	count, err := svc.CountUnread(owner.ID)
	if err != nil || count != 3 {
		t.Fatalf("unread = %d, %v; want 3", count, err)
	}

	if err := svc.MarkAllRead(owner.ID); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	count, _ = svc.CountUnread(owner.ID)
	if count != 0 {
		t.Fatalf("unread after mark all = %d, want 0", count)
	}
}

func TestListFiltersAndLimits(t *testing.T) {
	conn := newTestDB(t)
	svc := NewNotificationService(conn)
	owner := createUser(t, conn, "owner")
	other := createUser(t, conn, "other")

	for i := 0; i < 5; i++ {
		n := models.Notification{UserID: owner.ID, Type: models.NotificationTypeSystem, Content: "n", IsRead: i%2 == 0}
		if err := conn.Create(&n).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	foreign := models.Notification{UserID: other.ID, Type: models.NotificationTypeSystem, Content: "not yours"}
	if err := conn.Create(&foreign).Error; err != nil {
		t.Fatalf("seed foreign: %v", err)
	}

	all, err := svc.List(owner.ID, false, 0)
	if err != nil || len(all) != 5 {
		t.Fatalf("all = %d, %v; want 5", len(all), err)
	}
	unread, err := svc.List(owner.ID, true, 0)
	if err != nil || len(unread) != 2 {
		t.Fatalf("unread = %d, %v; want 2", len(unread), err)
	}
	limited, err := svc.List(owner.ID, false, 3)
	if err != nil || len(limited) != 3 {
		t.Fatalf("limited = %d, %v; want 3", len(limited), err)
	}
}

func TestFriendRequestFanout(t *testing.T) {
	conn := newTestDB(t)
	notifier := NewNotificationService(conn)
	svc := NewFriendshipService(conn, notifier)
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.Accept(bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	var toBob, toAlice []models.Notification
	conn.Where("user_id = ?", bob.ID).Find(&toBob)
	conn.Where("user_id = ?", alice.ID).Find(&toAlice)
	if len(toBob) != 1 || toBob[0].Type != models.NotificationTypeFriendRequest {
		t.Fatalf("bob notifications = %+v, want one friend_request", toBob)
	}
	if len(toAlice) != 1 || toAlice[0].Type != models.NotificationTypeFriendAccept {
		t.Fatalf("alice notifications = %+v, want one friend_accept", toAlice)
	}
}
