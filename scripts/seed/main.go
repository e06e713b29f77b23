//go:build ignore

// ===========================================================================
// Seed data for development/testing
// Run: go run scripts/seed/main.go
// ===========================================================================

package main

import (
	"fmt"
	"log"
	"time"

	"convodesk/internal/config"
	"convodesk/internal/database"
	"convodesk/internal/models"
	"convodesk/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("Seeding data...")

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLog, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database, zapLog)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Println("database ready")

	// =========================================================================
	// 1. Accounts
	// =========================================================================
	accounts := []*models.Account{
		{Name: "Acme Support", Slug: "acme", IsActive: true},
		{Name: "Globex Helpdesk", Slug: "globex", IsActive: true},
	}

	for i, account := range accounts {
		var existing models.Account
		if err := db.Where("slug = ?", account.Slug).First(&existing).Error; err == nil {
			fmt.Printf("account %q already exists\n", account.Slug)
			accounts[i] = &existing
			continue
		}
		if err := db.Create(account).Error; err != nil {
			log.Fatalf("create account %q: %v", account.Slug, err)
		}
		fmt.Printf("created account %s (%s)\n", account.Name, account.ID)
	}

	// =========================================================================
	// 2. Users: one superadmin, per-account admin and agents
	// =========================================================================
	users := []*models.User{
		{
			Email:    "root@convodesk.local",
			Name:     "Platform Root",
			Role:     models.RoleSuperadmin,
			IsActive: true,
		},
		{
			AccountID: &accounts[0].ID,
			Email:     "admin@acme.test",
			Name:      "Acme Admin",
			Role:      models.RoleAdmin,
			IsActive:  true,
		},
		{
			AccountID: &accounts[0].ID,
			Email:     "agent1@acme.test",
			Name:      "Acme Agent One",
			Role:      models.RoleAgent,
			IsActive:  true,
		},
		{
			AccountID: &accounts[0].ID,
			Email:     "agent2@acme.test",
			Name:      "Acme Agent Two",
			Role:      models.RoleAgent,
			IsActive:  true,
		},
		{
			AccountID: &accounts[0].ID,
			Email:     "retired@acme.test",
			Name:      "Acme Former Agent",
			Role:      models.RoleAgent,
			IsActive:  false,
		},
		{
			AccountID: &accounts[1].ID,
			Email:     "admin@globex.test",
			Name:      "Globex Admin",
			Role:      models.RoleAdmin,
			IsActive:  true,
		},
		{
			AccountID: &accounts[1].ID,
			Email:     "agent@globex.test",
			Name:      "Globex Agent",
			Role:      models.RoleAgent,
			IsActive:  true,
		},
	}

	byEmail := map[string]*models.User{}
	for _, user := range users {
		if err := user.SetPassword("Password123!"); err != nil {
			zapLog.Warn("set password failed", zap.Error(err))
		}

		var existing models.User
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			fmt.Printf("user %q already exists\n", user.Email)
			byEmail[user.Email] = &existing
			continue
		}
		if err := db.Create(user).Error; err != nil {
			zapLog.Warn("create user failed", zap.String("email", user.Email), zap.Error(err))
			continue
		}
		byEmail[user.Email] = user
		fmt.Printf("created user %s (%s)\n", user.Email, user.Role)
	}

	// =========================================================================
	// 3. Contacts
	// =========================================================================
	contacts := []*models.Contact{
		{AccountID: accounts[0].ID, Name: "Jamie Rivera", Email: "jamie@example.com"},
		{AccountID: accounts[0].ID, Name: "Sam Okafor", Email: "sam@example.com"},
		{AccountID: accounts[0].ID, Name: "Dana Petrov", Email: "dana@example.com"},
		{AccountID: accounts[1].ID, Name: "Lee Tanaka", Email: "lee@example.com"},
	}

	for _, contact := range contacts {
		var existing models.Contact
		if err := db.Where("account_id = ? AND email = ?", contact.AccountID, contact.Email).First(&existing).Error; err == nil {
			contact.ID = existing.ID
			continue
		}
		if err := db.Create(contact).Error; err != nil {
			zapLog.Warn("create contact failed", zap.String("email", contact.Email), zap.Error(err))
		}
	}

	// =========================================================================
	// 4. Conversations in every status, assigned and unassigned
	// =========================================================================
	agentOne := byEmail["agent1@acme.test"]
	agentTwo := byEmail["agent2@acme.test"]
	globexAgent := byEmail["agent@globex.test"]
	if agentOne == nil || agentTwo == nil || globexAgent == nil {
		log.Fatal("seed users missing, cannot create conversations")
	}

	now := time.Now()
	resolvedAt := now.Add(-2 * time.Hour)
	seedConversations := []struct {
		conv    models.Conversation
		opener  string
		replies []string
	}{
		{
			conv: models.Conversation{
				AccountID:  accounts[0].ID,
				ContactID:  contacts[0].ID,
				Status:     models.StatusOpen,
				Priority:   models.PriorityHigh,
				AssigneeID: &agentOne.ID,
			},
			opener:  "Hi, my last order never arrived.",
			replies: []string{"Sorry about that, checking the shipment now."},
		},
		{
			conv: models.Conversation{
				AccountID: accounts[0].ID,
				ContactID: contacts[1].ID,
				Status:    models.StatusOpen,
				Priority:  models.PriorityNormal,
			},
			opener: "Can I change my billing address?",
		},
		{
			conv: models.Conversation{
				AccountID:  accounts[0].ID,
				ContactID:  contacts[2].ID,
				Status:     models.StatusPending,
				Priority:   models.PriorityNormal,
				AssigneeID: &agentTwo.ID,
			},
			opener:  "The promo code is not applying at checkout.",
			replies: []string{"We escalated this to the payments team, waiting on them."},
		},
		{
			conv: models.Conversation{
				AccountID:  accounts[0].ID,
				ContactID:  contacts[0].ID,
				Status:     models.StatusResolved,
				Priority:   models.PriorityLow,
				AssigneeID: &agentOne.ID,
				ResolvedAt: &resolvedAt,
			},
			opener:  "How do I reset my password?",
			replies: []string{"Use the reset link on the login page.", "That worked, thanks!"},
		},
		{
			conv: models.Conversation{
				AccountID:  accounts[1].ID,
				ContactID:  contacts[3].ID,
				Status:     models.StatusOpen,
				Priority:   models.PriorityUrgent,
				AssigneeID: &globexAgent.ID,
			},
			opener: "Our whole team is locked out.",
		},
	}

	for _, seed := range seedConversations {
		conv := seed.conv
		if err := db.Create(&conv).Error; err != nil {
			zapLog.Warn("create conversation failed", zap.Error(err))
			continue
		}

		messages := []models.Message{{
			ConversationID: conv.ID,
			SenderKind:     models.SenderContact,
			Content:        seed.opener,
		}}
		for _, reply := range seed.replies {
			var senderID *uuid.UUID
			kind := models.SenderAgent
			if conv.AssigneeID != nil {
				senderID = conv.AssigneeID
			}
			messages = append(messages, models.Message{
				ConversationID: conv.ID,
				SenderKind:     kind,
				SenderID:       senderID,
				Content:        reply,
			})
		}
		for i := range messages {
			if err := db.Create(&messages[i]).Error; err != nil {
				zapLog.Warn("create message failed", zap.Error(err))
			}
		}

		last := messages[len(messages)-1]
		conv.UpdateLastMessage(last.Content, now)
		if err := db.Save(&conv).Error; err != nil {
			zapLog.Warn("update conversation preview failed", zap.Error(err))
		}

		fmt.Printf("created conversation %s (%s)\n", conv.ID, conv.Status)
	}

	fmt.Println("Seed complete. Login: admin@acme.test / Password123!")
}
