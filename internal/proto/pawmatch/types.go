package pawmatch

// Status is the result discriminant carried by every unary response.
// Ok=false responses name the failure in Error (e.g. "DuplicateLike") with a human-readable Message.
type Status struct {
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Status) GetOk() bool {
	if s == nil {
		return false
	}
	return s.Ok
}

func (s *Status) GetError() string {
	if s == nil {
		return ""
	}
	return s.Error
}

func (s *Status) GetMessage() string {
	if s == nil {
		return ""
	}
	return s.Message
}

// --- MatchService ---

type SubmitLikeRequest struct {
	ToUserId   string  `json:"to_user_id"`
	TargetType string  `json:"target_type"`
	TargetId   string  `json:"target_id"`
	Message    *string `json:"message,omitempty"`
}

type SubmitLikeResponse struct {
	Status  *Status `json:"status"`
	LikeId  string  `json:"like_id,omitempty"`
	Matched bool    `json:"matched"`
	MatchId string  `json:"match_id,omitempty"`
}

type PassRequest struct {
	TargetUserId string `json:"target_user_id"`
}

type PassResponse struct {
	Status *Status `json:"status"`
}

type ListLikesRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
}

func (r *ListLikesRequest) GetPaginationToken() string {
	if r == nil || r.PaginationToken == nil {
		return ""
	}
	return *r.PaginationToken
}

type Like struct {
	Id              string  `json:"id"`
	FromUserId      string  `json:"from_user_id"`
	ToUserId        string  `json:"to_user_id"`
	CounterpartName string  `json:"counterpart_name"`
	TargetType      string  `json:"target_type"`
	TargetId        string  `json:"target_id"`
	Message         *string `json:"message,omitempty"`
	UnixTimestamp   uint64  `json:"unix_timestamp"`
}

type ListLikesResponse struct {
	Status              *Status `json:"status"`
	Likes               []*Like `json:"likes"`
	NextPaginationToken *string `json:"next_pagination_token,omitempty"`
}

func (r *ListLikesResponse) GetNextPaginationToken() string {
	if r == nil || r.NextPaginationToken == nil {
		return ""
	}
	return *r.NextPaginationToken
}

type CountIncomingLikesRequest struct{}

type CountIncomingLikesResponse struct {
	Status *Status `json:"status"`
	Count  uint64  `json:"count"`
}

type ListMatchesRequest struct{}

type Match struct {
	Id            string `json:"id"`
	OtherUserId   string `json:"other_user_id"`
	OtherName     string `json:"other_name"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListMatchesResponse struct {
	Status  *Status  `json:"status"`
	Matches []*Match `json:"matches"`
}

// --- ChatService ---

type ListConversationsRequest struct{}

type Conversation struct {
	Id                 string  `json:"id"`
	CounterpartId      string  `json:"counterpart_id"`
	CounterpartName    string  `json:"counterpart_name"`
	MatchCreatedUnix   uint64  `json:"match_created_unix"`
	LastActivityUnix   uint64  `json:"last_activity_unix"`
	LastMessagePreview *string `json:"last_message_preview,omitempty"`
	LastSenderId       *string `json:"last_sender_id,omitempty"`
	UnreadCount        uint64  `json:"unread_count"`
}

type ListConversationsResponse struct {
	Status        *Status         `json:"status"`
	Conversations []*Conversation `json:"conversations"`
}

type Message struct {
	Id             string `json:"id"`
	ConversationId string `json:"conversation_id"`
	SenderId       string `json:"sender_id"`
	RecipientId    string `json:"recipient_id"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedUnix    uint64 `json:"created_unix"`
	UpdatedUnix    uint64 `json:"updated_unix"`
}

type ListMessagesRequest struct {
	ConversationId  string  `json:"conversation_id"`
	PaginationToken *string `json:"pagination_token,omitempty"`
}

type ListMessagesResponse struct {
	Status              *Status    `json:"status"`
	Messages            []*Message `json:"messages"`
	NextPaginationToken *string    `json:"next_pagination_token,omitempty"`
}

type SendMessageRequest struct {
	ConversationId string `json:"conversation_id"`
	Content        string `json:"content"`
}

type SendMessageResponse struct {
	Status  *Status  `json:"status"`
	Message *Message `json:"message,omitempty"`
}

type MarkReadRequest struct {
	ConversationId string `json:"conversation_id"`
}

type MarkReadResponse struct {
	Status  *Status `json:"status"`
	Updated uint64  `json:"updated"`
}

type SubscribeRequest struct {
	ConversationId string `json:"conversation_id"`
}

// SubscribeEvent is streamed by ChatService.Subscribe. The first event has Ready set and no message;
// every later event carries one newly inserted message.
type SubscribeEvent struct {
	Ready   bool     `json:"ready,omitempty"`
	Message *Message `json:"message,omitempty"`
}

// --- ProfileService ---

type PromptAnswer struct {
	Id         string `json:"id"`
	OwnerType  string `json:"owner_type"`
	OwnerId    string `json:"owner_id"`
	PromptId   string `json:"prompt_id"`
	AnswerText string `json:"answer_text"`
}

type Pet struct {
	Id      string          `json:"id"`
	UserId  string          `json:"user_id"`
	Name    string          `json:"name"`
	Age     *int32          `json:"age,omitempty"`
	Weight  *string         `json:"weight,omitempty"`
	Breed   *string         `json:"breed,omitempty"`
	Bio     *string         `json:"bio,omitempty"`
	Answers []*PromptAnswer `json:"answers,omitempty"`
}

type ProfileCard struct {
	UserId      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Age         *int32          `json:"age,omitempty"`
	Height      *string         `json:"height,omitempty"`
	Sexuality   *string         `json:"sexuality,omitempty"`
	Bio         *string         `json:"bio,omitempty"`
	Answers     []*PromptAnswer `json:"answers,omitempty"`
	Pets        []*Pet          `json:"pets,omitempty"`
}

type GetProfileRequest struct {
	UserId string `json:"user_id"`
}

type GetProfileResponse struct {
	Status  *Status      `json:"status"`
	Profile *ProfileCard `json:"profile,omitempty"`
}

type UpsertProfileRequest struct {
	DisplayName string  `json:"display_name"`
	Age         *int32  `json:"age,omitempty"`
	Height      *string `json:"height,omitempty"`
	Sexuality   *string `json:"sexuality,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

type UpsertProfileResponse struct {
	Status  *Status      `json:"status"`
	Profile *ProfileCard `json:"profile,omitempty"`
}

type ListPetsRequest struct {
	UserId string `json:"user_id"`
}

type ListPetsResponse struct {
	Status *Status `json:"status"`
	Pets   []*Pet  `json:"pets"`
}

type SavePetRequest struct {
	Id     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Age    *int32  `json:"age,omitempty"`
	Weight *string `json:"weight,omitempty"`
	Breed  *string `json:"breed,omitempty"`
	Bio    *string `json:"bio,omitempty"`
}

type SavePetResponse struct {
	Status *Status `json:"status"`
	Pet    *Pet    `json:"pet,omitempty"`
}

type DeletePetRequest struct {
	PetId string `json:"pet_id"`
}

type DeletePetResponse struct {
	Status *Status `json:"status"`
}

type Prompt struct {
	Id        string `json:"id"`
	OwnerType string `json:"owner_type"`
	Text      string `json:"text"`
}

type ListPromptsRequest struct {
	OwnerType string `json:"owner_type"`
}

type ListPromptsResponse struct {
	Status  *Status   `json:"status"`
	Prompts []*Prompt `json:"prompts"`
}

type SavePromptAnswerRequest struct {
	OwnerType  string `json:"owner_type"`
	OwnerId    string `json:"owner_id"`
	PromptId   string `json:"prompt_id"`
	AnswerText string `json:"answer_text"`
}

type SavePromptAnswerResponse struct {
	Status *Status       `json:"status"`
	Answer *PromptAnswer `json:"answer,omitempty"`
}

// --- FeedService ---

type NextCardsRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           int32   `json:"limit,omitempty"`
}

type NextCardsResponse struct {
	Status              *Status        `json:"status"`
	Cards               []*ProfileCard `json:"cards"`
	NextPaginationToken *string        `json:"next_pagination_token,omitempty"`
}
