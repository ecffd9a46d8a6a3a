package rest

import (
	"marketplace-client/internal/core/domain"
)

// --- DTO запросов ---

type UpdateFilterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type ChangePageRequest struct {
	Page int `json:"page"`
}

type ToggleFavoriteRequest struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	UserType             string `json:"user_type"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type CreateDraftRequest struct {
	Kind string `json:"kind"`
}

type UpdateDraftFieldRequest struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

type SubmitDraftRequest struct {
	Force bool `json:"force"`
}

// --- DTO ответов ---

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListingCardResponse - структура для карточки объекта в ответе.
// Помимо сырых значений несет отформатированные строки для рендера.
type ListingCardResponse struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Region   string   `json:"region"`
	City     string   `json:"city"`
	LandType string   `json:"land_type"`
	Purpose  string   `json:"purpose"`
	Status   string   `json:"status"`
	Address  string   `json:"address"`
	Company  string   `json:"company"`
	Images   []string `json:"images"`

	Price *float64 `json:"price"`
	Area  *float64 `json:"area"`

	FormattedPrice string `json:"formatted_price"`
	FormattedArea  string `json:"formatted_area"`
	FormattedDate  string `json:"formatted_date"`
	StatusBadge    string `json:"status_badge"`

	IsFavorite bool `json:"is_favorite"`
}

// SnapshotResponse - видимое состояние листинга: элементы, фильтры,
// пагинация, флаг загрузки и последняя ошибка.
type SnapshotResponse struct {
	Data        []ListingCardResponse `json:"data"`
	Filters     map[string]string     `json:"filters"`
	CurrentPage int                   `json:"current_page"`
	LastPage    int                   `json:"last_page"`
	PerPage     int                   `json:"per_page"`
	Total       int                   `json:"total"`
	TotalLabel  string                `json:"total_label"`
	IsLoading   bool                  `json:"is_loading"`
	Error       string                `json:"error,omitempty"`
}

// PaginatedFavoritesResponse - страница серверного списка избранного.
type PaginatedFavoritesResponse struct {
	Data        []ListingCardResponse `json:"data"`
	CurrentPage int                   `json:"current_page"`
	LastPage    int                   `json:"last_page"`
	Total       int                   `json:"total"`
}

type ToggleFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type SessionResponse struct {
	Token    string `json:"token"`
	UserType string `json:"user_type"`
}

type NotificationResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	Read      bool   `json:"read"`
}

type NotificationsListResponse struct {
	Data  []NotificationResponse `json:"data"`
	Error string                 `json:"error,omitempty"`
}

type AttachmentResponse struct {
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// DraftResponse - текущее состояние черновика многошаговой формы.
type DraftResponse struct {
	ID          string                 `json:"id"`
	Kind        string                 `json:"kind"`
	Fields      map[string]interface{} `json:"fields"`
	CurrentStep int                    `json:"current_step"`
	TotalSteps  int                    `json:"total_steps"`
	Attachments []AttachmentResponse   `json:"attachments"`
}

// --- Маппинг домена в DTO ---

func toCardResponse(card domain.ListingCard) ListingCardResponse {
	return ListingCardResponse{
		ID:             card.ID,
		Title:          card.Title,
		Region:         card.Region,
		City:           card.City,
		LandType:       card.LandType,
		Purpose:        card.Purpose,
		Status:         card.Status,
		Address:        card.Address,
		Company:        card.Company,
		Images:         card.Images,
		Price:          card.Price,
		Area:           card.Area,
		FormattedPrice: FormatPrice(card.Price),
		FormattedArea:  FormatArea(card.Area),
		FormattedDate:  FormatDate(card.CreatedAt),
		StatusBadge:    StatusBadgeClass(card.Status),
		IsFavorite:     card.IsFavorite,
	}
}

func toSnapshotResponse(snap domain.ListingsSnapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Data:        make([]ListingCardResponse, len(snap.Items)),
		Filters:     snap.Filters,
		CurrentPage: snap.CurrentPage,
		LastPage:    snap.LastPage,
		PerPage:     snap.PerPage,
		Total:       snap.Total,
		TotalLabel:  formatCount(snap.Total),
		IsLoading:   snap.IsLoading,
		Error:       snap.Error,
	}
	for i, card := range snap.Items {
		resp.Data[i] = toCardResponse(card)
	}
	return resp
}

func toDraftResponse(draft *domain.FormDraft) DraftResponse {
	totalSteps, _ := domain.StepsForKind(draft.Kind)
	resp := DraftResponse{
		ID:          draft.ID,
		Kind:        string(draft.Kind),
		Fields:      draft.Fields,
		CurrentStep: draft.CurrentStep,
		TotalSteps:  totalSteps,
		Attachments: make([]AttachmentResponse, len(draft.Attachments)),
	}
	for i, att := range draft.Attachments {
		resp.Attachments[i] = AttachmentResponse{
			FileName: att.FileName,
			MIMEType: att.MIMEType,
			Size:     att.Size,
		}
	}
	return resp
}
