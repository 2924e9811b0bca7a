package services

import (
	"errors"
	"testing"

	"aniverse/internal/models"
)

func TestFriendshipLifecycle(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	status, _ := svc.Status(alice.ID, bob.ID)
	if status != models.FriendshipPending {
		t.Fatalf("status = %q, want pending", status)
	}

	if err := svc.Accept(bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	status, _ = svc.Status(bob.ID, alice.ID)
	if status != models.FriendshipAccepted {
		t.Fatalf("status = %q, want accepted", status)
	}

	ids, err := svc.FriendIDs(alice.ID)
	if err != nil || len(ids) != 1 || ids[0] != bob.ID {
		t.Fatalf("FriendIDs = %v, %v; want [%d]", ids, err, bob.ID)
	}

	var edge models.Friendship
	conn.First(&edge)
	if edge.AcceptedAt == nil {
		t.Fatal("AcceptedAt not set")
	}
}

func TestSendRequestRejectsEveryExistingState(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.SendRequest(alice.ID, alice.ID); !errors.Is(err, ErrSelfAction) {
		t.Fatalf("self err = %v, want ErrSelfAction", err)
	}
	if err := svc.SendRequest(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing target err = %v, want ErrNotFound", err)
	}

	// pending 状态：双方都不能再发
	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.SendRequest(alice.ID, bob.ID); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("resend err = %v, want ErrRequestPending", err)
	}
	if err := svc.SendRequest(bob.ID, alice.ID); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("reverse send err = %v, want ErrRequestPending", err)
	}

	// accepted 状态
	if err := svc.Accept(bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.SendRequest(alice.ID, bob.ID); !errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("send to friend err = %v, want ErrAlreadyFriends", err)
	}

	// blocked 状态
	if err := svc.Block(alice.ID, bob.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := svc.SendRequest(bob.ID, alice.ID); !errors.Is(err, ErrBlocked) {
		t.Fatalf("send to blocker err = %v, want ErrBlocked", err)
	}
}

func TestAcceptOnlyByRecipient(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.Accept(alice.ID, bob.ID); !errors.Is(err, ErrNoPendingRequest) {
		t.Fatalf("accept without request err = %v, want ErrNoPendingRequest", err)
	}
	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	// 发起者不能替对方接受
	if err := svc.Accept(alice.ID, bob.ID); !errors.Is(err, ErrNoPendingRequest) {
		t.Fatalf("initiator accept err = %v, want ErrNoPendingRequest", err)
	}
}

func TestRejectDeletesEdge(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.Reject(bob.ID, alice.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	status, _ := svc.Status(alice.ID, bob.ID)
	if status != "" {
		t.Fatalf("status after reject = %q, want absent", status)
	}
	// 拒绝后可以重新发起
	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("resend after reject: %v", err)
	}
}

func TestRemoveRequiresAccepted(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.Remove(alice.ID, bob.ID); !errors.Is(err, ErrNotFriends) {
		t.Fatalf("remove absent err = %v, want ErrNotFriends", err)
	}
	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.Remove(alice.ID, bob.ID); !errors.Is(err, ErrNotFriends) {
		t.Fatalf("remove pending err = %v, want ErrNotFriends", err)
	}
	if err := svc.Accept(bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// 任一方都可解除
	if err := svc.Remove(bob.ID, alice.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	status, _ := svc.Status(alice.ID, bob.ID)
	if status != "" {
		t.Fatalf("status after remove = %q, want absent", status)
	}
}

func TestBlockOverwritesAnyState(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.SendRequest(alice.ID, bob.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.Accept(bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// bob 拉黑，覆盖 accepted，发起方改记 bob
	if err := svc.Block(bob.ID, alice.ID); err != nil {
		t.Fatalf("block: %v", err)
	}

	var edge models.Friendship
	conn.First(&edge)
	if edge.Status != models.FriendshipBlocked {
		t.Fatalf("status = %q, want blocked", edge.Status)
	}
	if edge.InitiatorID != bob.ID {
		t.Fatalf("initiator = %d, want %d", edge.InitiatorID, bob.ID)
	}
	if edge.AcceptedAt != nil {
		t.Fatal("AcceptedAt not cleared on block")
	}

	blocked, err := svc.Blocked(bob.ID)
	if err != nil || len(blocked) != 1 || blocked[0].ID != alice.ID {
		t.Fatalf("Blocked = %v, %v; want [alice]", blocked, err)
	}
}

func TestUnblockOnlyByBlocker(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	if err := svc.Unblock(alice.ID, bob.ID); !errors.Is(err, ErrNotBlocked) {
		t.Fatalf("unblock absent err = %v, want ErrNotBlocked", err)
	}
	if err := svc.Block(alice.ID, bob.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := svc.Unblock(bob.ID, alice.ID); !errors.Is(err, ErrNotBlocker) {
		t.Fatalf("victim unblock err = %v, want ErrNotBlocker", err)
	}
	if err := svc.Unblock(alice.ID, bob.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	status, _ := svc.Status(alice.ID, bob.ID)
	if status != "" {
		t.Fatalf("status after unblock = %q, want absent", status)
	}
}

func TestFriendshipCanonicalOrder(t *testing.T) {
	conn := newTestDB(t)
	svc := NewFriendshipService(conn, NewNotificationService(conn))
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	// 高 ID 向低 ID 发起，行仍按 (min, max) 存
	if err := svc.SendRequest(bob.ID, alice.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	var edge models.Friendship
	conn.First(&edge)
	if edge.UserID1 >= edge.UserID2 {
		t.Fatalf("edge order = (%d, %d), want ascending", edge.UserID1, edge.UserID2)
	}
	if edge.InitiatorID != bob.ID {
		t.Fatalf("initiator = %d, want %d", edge.InitiatorID, bob.ID)
	}

	incoming, _ := svc.PendingIncoming(alice.ID)
	sent, _ := svc.PendingSent(bob.ID)
	if len(incoming) != 1 || len(sent) != 1 {
		t.Fatalf("incoming/sent = %d/%d, want 1/1", len(incoming), len(sent))
	}
}
