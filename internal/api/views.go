package api

import (
	"fmt"
	"time"

	"github.com/erazemk/najdi/internal/lifecycle"
	"github.com/erazemk/najdi/internal/model"
)

// publicItem is what anonymous visitors see of a missing item. Contact
// details stay hidden; finders reach the owner through the message relay.
type publicItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	Image         string     `json:"image,omitempty"`
	Images        []string   `json:"images"`
	ReportedSince *time.Time `json:"reported_since,omitempty"`
}

// itemDetail is the full view shown to an item's owner and to admins.
type itemDetail struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	State         string     `json:"state"`
	Reported      bool       `json:"reported"`
	ReportedSince *time.Time `json:"reported_since,omitempty"`
	TrackedSince  *time.Time `json:"tracked_since,omitempty"`
	OwnerID       *int64     `json:"owner_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Images        []string   `json:"images"`
}

// searchItem is the item payload of a successful search.
type searchItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

func imageURL(id string, pos int) string {
	return fmt.Sprintf("/api/items/%s/images/%d", id, pos)
}

func imageURLs(item *model.Item) []string {
	urls := make([]string, len(item.Images))
	for i := range item.Images {
		urls[i] = imageURL(item.ID, i)
	}
	return urls
}

func primaryImageURL(item *model.Item) string {
	if item.PrimaryImage() == nil {
		return ""
	}
	return imageURL(item.ID, 0)
}

func toPublic(item *model.Item) publicItem {
	return publicItem{
		ID:            item.ID,
		Title:         item.Title,
		Name:          item.Name,
		Image:         primaryImageURL(item),
		Images:        imageURLs(item),
		ReportedSince: item.ReportedSince,
	}
}

func toDetail(item *model.Item) itemDetail {
	return itemDetail{
		ID:            item.ID,
		Title:         item.Title,
		Name:          item.Name,
		Email:         item.Email,
		Phone:         item.Phone,
		State:         item.State(),
		Reported:      item.Reported,
		ReportedSince: item.ReportedSince,
		TrackedSince:  item.TrackedSince,
		OwnerID:       item.OwnerID,
		CreatedAt:     item.CreatedAt,
		Images:        imageURLs(item),
	}
}

func toDetails(items []model.Item) []itemDetail {
	out := make([]itemDetail, len(items))
	for i := range items {
		out[i] = toDetail(&items[i])
	}
	return out
}

// canManage reports whether a may see an item's full details.
func canManage(a *lifecycle.Actor, item *model.Item) bool {
	return a != nil && (a.IsAdmin() || item.OwnedBy(a.UserID))
}
