package blogsdk

import (
	"bytes"
	"encoding/json"
)

// ============================================================================
// Auth
// ============================================================================

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// LoginRequest authenticates with either a username or an email.
type LoginRequest struct {
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates an account. ConfirmPassword is only checked
// locally and never sent.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
}

// ============================================================================
// Posts
// ============================================================================

type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	MediaType    string    `json:"mediaType,omitempty"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	Author       Author    `json:"author"`
	LikeCount    int       `json:"likeCount"`
	IsHidden     bool      `json:"isHidden"`
	IsLiked      bool      `json:"isLiked,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CommentCount int       `json:"commentCount,omitempty"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
	Comments     []Comment `json:"comments,omitempty"`
}

type Comment struct {
	ID        int64         `json:"id"`
	Author    CommentAuthor `json:"author"`
	Content   string        `json:"content"`
	LikeCount int           `json:"likeCount"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// CommentAuthor is the comment author's username. The API sends either a
// bare string or a user object depending on the endpoint.
type CommentAuthor string

func (a *CommentAuthor) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var u struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}
		*a = CommentAuthor(u.Username)
		return nil
	}

	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		*a = CommentAuthor(*s)
	}
	return nil
}

// PageOptions selects a page of the public feed. Zero values mean page 1
// of 10.
type PageOptions struct {
	Page int `url:"page"`
	Size int `url:"size"`
}

func (o PageOptions) withDefaults() PageOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Size <= 0 {
		o.Size = 10
	}
	return o
}

type PostPage struct {
	Posts       []Post `json:"posts"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags,omitempty"`
	MediaType string   `json:"mediaType,omitempty" validate:"omitempty,oneof=image video gif"`
	MediaURL  string   `json:"mediaUrl,omitempty"`
}

type MediaUpload struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
}

type CommentAck struct {
	Message        string `json:"message"`
	CommentContent string `json:"commentContent"`
	Author         string `json:"author"`
}

type CommentLikeAck struct {
	Message   string `json:"message"`
	LikeCount int    `json:"likeCount"`
}

// ============================================================================
// Users
// ============================================================================

type UserProfile struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"fullName,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Role              Role   `json:"role"`
	IsBanned          bool   `json:"isBanned"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
	PostCount         int    `json:"postCount,omitempty"`
	CommentCount      int    `json:"commentCount,omitempty"`
}

type UpdateProfileRequest struct {
	FullName          string `json:"fullName,omitempty"`
	Bio               string `json:"bio,omitempty" validate:"max=500"`
	Avatar            string `json:"avatar,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

type ProfilePictureUpload struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}

// ============================================================================
// Notifications
// ============================================================================

type NotificationType string

const (
	NotificationNewPost     NotificationType = "NEW_POST"
	NotificationNewFollower NotificationType = "NEW_FOLLOWER"
	NotificationPostLike    NotificationType = "POST_LIKE"
	NotificationComment     NotificationType = "COMMENT"
	NotificationCommentLike NotificationType = "COMMENT_LIKE"
)

type Notification struct {
	ID            int64            `json:"id"`
	User          Participant      `json:"user"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	RelatedPostID *int64           `json:"relatedPostId,omitempty"`
	RelatedUserID *int64           `json:"relatedUserId,omitempty"`
	IsRead        bool             `json:"isRead"`
	CreatedAt     string           `json:"createdAt"`
}

// NotificationPage mirrors the server's zero-based page envelope.
type NotificationPage struct {
	Content       []Notification `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
}

type notificationPageQuery struct {
	Page int `url:"page"`
	Size int `url:"size"`
}

// ============================================================================
// Reports
// ============================================================================

type Report struct {
	ID               int64  `json:"id"`
	ReporterID       int64  `json:"reporterId"`
	ReporterUsername string `json:"reporterUsername"`
	PostID           int64  `json:"postId"`
	PostTitle        string `json:"postTitle"`
	Message          string `json:"message"`
	Resolved         bool   `json:"resolved"`
	CreatedAt        string `json:"createdAt"`
	AdminNotes       string `json:"adminNotes,omitempty"`
}

type CreateReportRequest struct {
	PostID  int64  `json:"postId" validate:"gt=0"`
	Message string `json:"message" validate:"required"`
}

type UpdateReportRequest struct {
	Resolved   bool   `json:"resolved"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

// ============================================================================
// Messages
// ============================================================================

type Participant struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Message struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"createdAt"`
	Read      bool        `json:"read"`
	Sender    Participant `json:"sender"`
	Receiver  Participant `json:"receiver"`
	IsSent    bool        `json:"isSent"`
}

type Conversation struct {
	UserID            int64  `json:"userId"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	LastMessage       string `json:"lastMessage,omitempty"`
	LastMessageTime   string `json:"lastMessageTime,omitempty"`
	LastMessageFromMe bool   `json:"lastMessageFromMe"`
	UnreadCount       int64  `json:"unreadCount"`
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" validate:"gt=0"`
	Content    string `json:"content" validate:"required"`
}

type SentMessage struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	Message   string `json:"message"`
}

// ============================================================================
// Admin
// ============================================================================

type AdminStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalPosts       int64 `json:"totalPosts"`
	TotalComments    int64 `json:"totalComments"`
	ActiveUsers      int64 `json:"activeUsers"`
	BannedUsers      int64 `json:"bannedUsers"`
	AdminUsers       int64 `json:"adminUsers"`
	PostsToday       int64 `json:"postsToday"`
	CommentsToday    int64 `json:"commentsToday"`
	NewUsersThisWeek int64 `json:"newUsersThisWeek"`
}

type changeRoleRequest struct {
	Role Role `json:"role" validate:"oneof=USER ADMIN"`
}

// ============================================================================
// Envelopes
// ============================================================================

type countResponse struct {
	Count int64 `json:"count"`
}

type postsEnvelope struct {
	Posts []Post `json:"posts"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}
