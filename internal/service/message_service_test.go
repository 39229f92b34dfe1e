package service_test

import (
	"context"
	"testing"

	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MessageServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.MessageService

	alice model.User
	bob   model.User
}

func (s *MessageServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	// Redis is optional; the repository falls back to DB counts.
	messageRepo := repository.NewMessageRepository(s.db, nil)
	s.svc = service.NewMessageService(messageRepo, repository.NewUserRepository(s.db))

	s.alice = model.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: model.Student}
	s.Require().NoError(s.db.Create(&s.alice).Error)
	s.bob = model.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: model.Instructor}
	s.Require().NoError(s.db.Create(&s.bob).Error)
}

func (s *MessageServiceSuite) send(from, to uint, body string) {
	_, err := s.svc.Send(context.Background(), from, service.SendMessageRequest{
		RecipientID: to,
		Body:        body,
	})
	s.Require().NoError(err)
}

func (s *MessageServiceSuite) TestSendAndUnreadCount() {
	s.send(s.alice.ID, s.bob.ID, "hello")
	s.send(s.alice.ID, s.bob.ID, "are you free tuesday?")

	count, err := s.svc.UnreadCount(context.Background(), s.bob.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	count, err = s.svc.UnreadCount(context.Background(), s.alice.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *MessageServiceSuite) TestReadingConversationClearsUnread() {
	s.send(s.alice.ID, s.bob.ID, "hello")

	messages, total, err := s.svc.Conversation(context.Background(), s.bob.ID, s.alice.ID, 1, 50)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Len(messages, 1)

	count, err := s.svc.UnreadCount(context.Background(), s.bob.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *MessageServiceSuite) TestSendToUnknownRecipient() {
	_, err := s.svc.Send(context.Background(), s.alice.ID, service.SendMessageRequest{
		RecipientID: 9999,
		Body:        "hello",
	})
	s.ErrorIs(err, util.ErrRecipientNotFound)
}

func (s *MessageServiceSuite) TestSendToSelfRejected() {
	_, err := s.svc.Send(context.Background(), s.alice.ID, service.SendMessageRequest{
		RecipientID: s.alice.ID,
		Body:        "note to self",
	})
	s.Error(err)
}

func (s *MessageServiceSuite) TestConversationsInbox() {
	s.send(s.alice.ID, s.bob.ID, "hello")
	s.send(s.bob.ID, s.alice.ID, "hi, yes")

	conversations, err := s.svc.Conversations(s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(conversations, 1)
	s.Equal(s.bob.ID, conversations[0].UserID)
	s.Equal("Bob", conversations[0].Name)
	s.Equal("hi, yes", conversations[0].LastMessage)
	s.Equal(int64(1), conversations[0].Unread)
}

func TestMessageServiceSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceSuite))
}
