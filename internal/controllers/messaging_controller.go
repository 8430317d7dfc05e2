package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/models"
)

// CreateConversation finds or creates the thread between the actor and
// another user. The pair is normalized (low id first) so both directions
// resolve to the same row; the unique index makes concurrent first-contact
// racers converge on one conversation.
func CreateConversation(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.UserID == actor.UserID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot start a conversation with yourself"})
		return
	}

	var other models.User
	if err := config.DB.First(&other, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	low, high := actor.UserID, input.UserID
	if low > high {
		low, high = high, low
	}

	var conversation models.Conversation
	err := config.DB.Where("user1_id = ? AND user2_id = ?", low, high).First(&conversation).Error
	if err == nil {
		config.DB.Preload("User1").Preload("User2").First(&conversation, conversation.ID)
		c.JSON(http.StatusOK, gin.H{"conversation": conversation})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	conversation = models.Conversation{User1ID: low, User2ID: high}
	if err := config.DB.Create(&conversation).Error; err != nil {
		if isUniqueViolation(err) {
			// lost the race to the other participant; return theirs
			config.DB.Where("user1_id = ? AND user2_id = ?", low, high).First(&conversation)
			c.JSON(http.StatusOK, gin.H{"conversation": conversation})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create conversation"})
		return
	}

	config.DB.Preload("User1").Preload("User2").First(&conversation, conversation.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Conversation created successfully",
		"conversation": conversation,
	})
}

// ListConversations returns the actor's threads ordered by recent activity,
// each annotated with the other participant, the latest message and the
// actor's unread count.
func ListConversations(c *gin.Context) {
	actor := auth.ActorFrom(c)

	var conversations []models.Conversation
	if err := config.DB.
		Where("user1_id = ? OR user2_id = ?", actor.UserID, actor.UserID).
		Preload("User1").
		Preload("User2").
		// message-less threads sort last on every driver
		Order("last_message_at IS NULL, last_message_at desc").
		Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversations"})
		return
	}

	out := make([]gin.H, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]

		var latest models.Message
		hasLatest := conv.LastMessageAt != nil
		if hasLatest {
			if err := config.DB.Where("conversation_id = ?", conv.ID).
				Order("created_at desc").
				First(&latest).Error; err != nil {
				hasLatest = false
			}
		}

		var unread int64
		config.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND receiver_id = ? AND read = ?", conv.ID, actor.UserID, false).
			Count(&unread)

		other := conv.User1
		if conv.User1ID == actor.UserID {
			other = conv.User2
		}

		entry := gin.H{
			"conversation": conv,
			"other_user":   other,
			"unread_count": unread,
		}
		if hasLatest {
			entry["latest_message"] = latest
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

// GetMessages returns a thread's messages oldest first and, as a side effect,
// marks everything addressed to the actor as read.
func GetMessages(c *gin.Context) {
	actor := auth.ActorFrom(c)

	conversation, ok := loadParticipantConversation(c, actor)
	if !ok {
		return
	}

	var messages []models.Message
	if err := config.DB.Where("conversation_id = ?", conversation.ID).
		Preload("Sender").
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}

	if err := config.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversation.ID, actor.UserID, false).
		Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage appends to a thread the actor participates in; the receiver is
// always the other participant.
func SendMessage(c *gin.Context) {
	actor := auth.ActorFrom(c)

	conversation, ok := loadParticipantConversation(c, actor)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       actor.UserID,
		ReceiverID:     conversation.OtherParticipant(actor.UserID),
		Content:        input.Content,
	}
	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(conversation).Update("last_message_at", &now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update conversation"})
		return
	}

	config.DB.Preload("Sender").First(&message, message.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// loadParticipantConversation resolves the :id parameter to a conversation
// the actor belongs to. Outsiders get a 404, not a 403, so thread ids leak
// nothing.
func loadParticipantConversation(c *gin.Context, actor auth.Actor) (*models.Conversation, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return nil, false
	}

	var conversation models.Conversation
	if err := config.DB.First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return nil, false
	}

	if !actor.CanAccessConversation(&conversation) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return nil, false
	}

	return &conversation, true
}
