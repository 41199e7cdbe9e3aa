package domain

import (
	"time"
)

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	CallerID    string `gorm:"type:varchar(128);primaryKey"`
	DisplayName string `gorm:"type:varchar(64);not null"`
	Role        string `gorm:"type:varchar(20);not null"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts ProfileModel to domain Profile.
func (m *ProfileModel) ToDomain() *Profile {
	return &Profile{
		DisplayName: m.DisplayName,
		Role:        ProfileRole(m.Role),
	}
}

// ProfileToModel converts a domain Profile to ProfileModel.
func ProfileToModel(callerID string, p *Profile) *ProfileModel {
	return &ProfileModel{
		CallerID:    callerID,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
	}
}

// OperatorRoleModel is the GORM model for the operator_roles table.
type OperatorRoleModel struct {
	CallerID  string `gorm:"type:varchar(128);primaryKey"`
	Role      string `gorm:"type:varchar(20);not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for OperatorRoleModel.
func (OperatorRoleModel) TableName() string {
	return "operator_roles"
}

// RoomModel is the GORM model for the rooms table. The primary key is a
// database sequence, so room ids stay monotonic across restarts; the
// unique index on code is what makes concurrent code allocation safe.
type RoomModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(64);not null"`
	Description string `gorm:"type:varchar(256)"`
	Creator     string `gorm:"type:varchar(128);index;not null"`
	Code        int64  `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for RoomModel.
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts RoomModel to domain Room. Participants are stored in
// their own table and must be attached by the repository.
func (m *RoomModel) ToDomain() *Room {
	return &Room{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Creator:     m.Creator,
		Code:        m.Code,
		CreatedAt:   m.CreatedAt,
	}
}

// ParticipantModel is the GORM model for the room_participants table.
// The composite primary key is what makes joins idempotent.
type ParticipantModel struct {
	RoomID   int64  `gorm:"primaryKey;autoIncrement:false"`
	CallerID string `gorm:"type:varchar(128);primaryKey"`
	JoinedAt time.Time
}

// TableName specifies the table name for ParticipantModel.
func (ParticipantModel) TableName() string {
	return "room_participants"
}

// MessageModel is the GORM model for the messages table. Seq is a database
// sequence; it defines the append order the read path sorts by.
type MessageModel struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	MessageID string `gorm:"type:varchar(36);uniqueIndex;not null"`
	RoomID    int64  `gorm:"index;not null"`
	Sender    string `gorm:"type:varchar(128);not null"`
	Content   string `gorm:"type:text;not null"`
	Timestamp int64  `gorm:"not null"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message.
func (m *MessageModel) ToDomain() *Message {
	return &Message{
		MessageID: m.MessageID,
		RoomID:    m.RoomID,
		Seq:       m.Seq,
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// MessageToModel converts a domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	return &MessageModel{
		MessageID: msg.MessageID,
		RoomID:    msg.RoomID,
		Sender:    msg.Sender,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}

// NoteModel is the GORM model for the notes table.
type NoteModel struct {
	RoomID    int64  `gorm:"primaryKey;autoIncrement:false"`
	CallerID  string `gorm:"type:varchar(128);primaryKey"`
	Body      string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName specifies the table name for NoteModel.
func (NoteModel) TableName() string {
	return "notes"
}
