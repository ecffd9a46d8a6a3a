package domain

import "time"

// DraftKind - вид многошаговой формы создания.
type DraftKind string

const (
	DraftLandAd           DraftKind = "land_ad"
	DraftAuctionAd        DraftKind = "auction_ad"
	DraftLandRequest      DraftKind = "land_request"
	DraftMarketingRequest DraftKind = "marketing_request"
)

// draftSteps - количество шагов мастера для каждого вида формы.
var draftSteps = map[DraftKind]int{
	DraftLandAd:           4,
	DraftAuctionAd:        3,
	DraftLandRequest:      3,
	DraftMarketingRequest: 2,
}

func StepsForKind(kind DraftKind) (int, bool) {
	n, ok := draftSteps[kind]
	return n, ok
}

// Attachment - проверенный на клиенте файл, прикрепленный к черновику.
// Hash заполняется только для изображений (перцептивный dHash) и служит
// для отсечения дубликатов внутри одного черновика.
type Attachment struct {
	FileName  string
	MIMEType  string
	Size      int64
	Hash      string
	Thumbnail []byte
	Data      []byte
}

// FormDraft - черновик многошаговой формы. Создается при открытии формы,
// мутируется на каждом редактировании поля и переходе шага, уничтожается
// при успешной отправке или явной отмене.
type FormDraft struct {
	ID          string
	Kind        DraftKind
	Fields      map[string]any
	CurrentStep int
	Touched     bool

	Attachments []Attachment
	CreatedAt   time.Time
}

// HasAttachmentHash сообщает, есть ли уже изображение с таким отпечатком.
func (d *FormDraft) HasAttachmentHash(hash string) bool {
	if hash == "" {
		return false
	}
	for _, a := range d.Attachments {
		if a.Hash == hash {
			return true
		}
	}
	return false
}

// AdditionalImageCount возвращает число изображений сверх главного:
// первое прикрепленное изображение считается главным фото объявления.
func (d *FormDraft) AdditionalImageCount() int {
	if n := d.ImageCount(); n > 0 {
		return n - 1
	}
	return 0
}

// ImageCount возвращает число прикрепленных изображений.
func (d *FormDraft) ImageCount() int {
	n := 0
	for _, a := range d.Attachments {
		if len(a.MIMEType) >= 6 && a.MIMEType[:6] == "image/" {
			n++
		}
	}
	return n
}
