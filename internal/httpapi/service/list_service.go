package service

import (
	"errors"
	"strings"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListService interface {
	CreateList(userID string, req dto.CreateListRequest) (*models.List, error)
	GetList(listID int64, viewerID string) (*models.List, error)
	UpdateList(userID string, listID int64, req dto.UpdateListRequest) (*models.List, error)
	DeleteList(userID string, listID int64) error
	AddBook(userID string, listID int64, req dto.AddListBookRequest) (*models.List, error)
	RemoveBook(userID string, listID, bookID int64) (*models.List, error)
	Reorder(userID string, listID int64, req dto.ReorderRequest) (applied int, skipped []int64, err error)
	ToggleLike(userID string, listID int64, action string) (likes int, err error)
	GetLists(viewerID string, page, pageSize int) ([]models.List, int64, error)
	GetUserLists(ownerID, viewerID string, page, pageSize int) ([]models.List, int64, error)
	SearchLists(query, viewerID string, page, pageSize int) ([]models.List, int64, error)
}

type listService struct {
	listRepo repository.ListRepository
	bookRepo repository.BookRepository
}

func NewListService(listRepo repository.ListRepository, bookRepo repository.BookRepository) ListService {
	return &listService{
		listRepo: listRepo,
		bookRepo: bookRepo,
	}
}

// canView applies the visibility rule. "friends" behaves as private
// because there is no friend graph to consult.
func canView(list *models.List, viewerID string) bool {
	if list.Visibility == models.VisibilityPublic {
		return true
	}
	return list.UserID == viewerID
}

// CreateList builds the list and its initial members in one shot. Book
// resolution is all or nothing: a single unknown id fails the whole
// request. Members without an explicit order keep their request
// position.
func (s *listService) CreateList(userID string, req dto.CreateListRequest) (*models.List, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewValidationError("list title is required")
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !models.ValidVisibility(visibility) {
		return nil, NewValidationError("visibility must be one of: public, private, friends")
	}

	var books []models.Book
	if len(req.Books) > 0 {
		ids := make([]int64, 0, len(req.Books))
		for _, input := range req.Books {
			ids = append(ids, input.BookID)
		}
		found, err := s.bookRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		if len(found) != len(dedupIDs(ids)) {
			return nil, NewValidationError("one or more books not found")
		}
		books = found
	}

	list := &models.List{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Visibility:  visibility,
		Tags:        req.Tags,
		Metadata:    computeListMetadata(books),
	}

	for i, input := range req.Books {
		order := i
		if input.Order != nil {
			order = *input.Order
		}
		list.Books = append(list.Books, models.ListBook{
			BookID:    input.BookID,
			Note:      strings.TrimSpace(input.Note),
			SortOrder: order,
		})
	}

	if err := s.listRepo.Create(list); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBookAlreadyInList
		}
		return nil, err
	}

	return s.listRepo.GetByID(list.ID)
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *listService) GetList(listID int64, viewerID string) (*models.List, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if !canView(list, viewerID) {
		return nil, ErrListForbidden
	}
	return list, nil
}

func (s *listService) UpdateList(userID string, listID int64, req dto.UpdateListRequest) (*models.List, error) {
	list, err := s.ownedList(userID, listID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewValidationError("list title is required")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Visibility != nil {
		if !models.ValidVisibility(*req.Visibility) {
			return nil, NewValidationError("visibility must be one of: public, private, friends")
		}
		fields["visibility"] = *req.Visibility
	}
	if req.Tags != nil {
		fields["tags"] = pq.StringArray(*req.Tags)
	}

	if len(fields) > 0 {
		if err := s.listRepo.UpdateFields(list.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.listRepo.GetByID(list.ID)
}

func (s *listService) DeleteList(userID string, listID int64) error {
	list, err := s.ownedList(userID, listID)
	if err != nil {
		return err
	}
	return s.listRepo.Delete(list.ID)
}

// AddBook appends a member. The membership unique index decides
// duplicates; a new member defaults to the end of the order.
func (s *listService) AddBook(userID string, listID int64, req dto.AddListBookRequest) (*models.List, error) {
	list, err := s.ownedList(userID, listID)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.GetByID(req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	order := len(list.Books)
	if req.Order != nil {
		order = *req.Order
	}

	entry := &models.ListBook{
		ListID:    list.ID,
		BookID:    req.BookID,
		Note:      strings.TrimSpace(req.Note),
		SortOrder: order,
	}
	if err := s.listRepo.AddBook(entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBookAlreadyInList
		}
		return nil, err
	}

	if err := s.recomputeMetadata(list.ID); err != nil {
		return nil, err
	}
	return s.listRepo.GetByID(list.ID)
}

func (s *listService) RemoveBook(userID string, listID, bookID int64) (*models.List, error) {
	list, err := s.ownedList(userID, listID)
	if err != nil {
		return nil, err
	}

	removed, err := s.listRepo.RemoveBook(list.ID, bookID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, ErrBookNotInList
	}

	if err := s.recomputeMetadata(list.ID); err != nil {
		return nil, err
	}
	return s.listRepo.GetByID(list.ID)
}

// Reorder applies the given positions to current members. Ids that are
// not members are skipped and reported back rather than failing the
// whole request. Membership does not change, so the metadata stays as
// it is.
func (s *listService) Reorder(userID string, listID int64, req dto.ReorderRequest) (int, []int64, error) {
	list, err := s.ownedList(userID, listID)
	if err != nil {
		return 0, nil, err
	}

	members, err := s.listRepo.GetMembers(list.ID)
	if err != nil {
		return 0, nil, err
	}
	present := make(map[int64]bool, len(members))
	for _, m := range members {
		present[m.BookID] = true
	}

	applied := 0
	skipped := []int64{}
	for _, bo := range req.BookOrders {
		if !present[bo.BookID] {
			skipped = append(skipped, bo.BookID)
			continue
		}
		if err := s.listRepo.UpdateOrder(list.ID, bo.BookID, bo.Order); err != nil {
			return applied, skipped, err
		}
		applied++
	}

	return applied, skipped, nil
}

// ToggleLike adjusts the like counter by one in either direction. Owners
// cannot like their own list.
func (s *listService) ToggleLike(userID string, listID int64, action string) (int, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrListNotFound
		}
		return 0, err
	}
	if list.UserID == userID {
		return 0, ErrOwnListLike
	}

	var delta int
	switch action {
	case "like":
		delta = 1
	case "unlike":
		delta = -1
	default:
		return 0, NewValidationError("action must be \"like\" or \"unlike\"")
	}

	return s.listRepo.AdjustLikes(list.ID, delta)
}

func (s *listService) GetLists(viewerID string, page, pageSize int) ([]models.List, int64, error) {
	return s.listRepo.List(repository.ListFilter{ViewerID: viewerID}, page, pageSize)
}

// GetUserLists shows all of the owner's lists to the owner, public ones
// to anyone else.
func (s *listService) GetUserLists(ownerID, viewerID string, page, pageSize int) ([]models.List, int64, error) {
	filter := repository.ListFilter{UserID: ownerID}
	if ownerID != viewerID {
		filter.Visibility = models.VisibilityPublic
	}
	return s.listRepo.List(filter, page, pageSize)
}

func (s *listService) SearchLists(query, viewerID string, page, pageSize int) ([]models.List, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, NewValidationError("search query is required")
	}
	return s.listRepo.Search(query, viewerID, page, pageSize)
}

func (s *listService) ownedList(userID string, listID int64) (*models.List, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrNotListOwner
	}
	return list, nil
}

func (s *listService) recomputeMetadata(listID int64) error {
	members, err := s.listRepo.GetMembers(listID)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.BookID)
	}

	var books []models.Book
	if len(ids) > 0 {
		books, err = s.bookRepo.GetByIDs(ids)
		if err != nil {
			return err
		}
	}

	return s.listRepo.UpdateMetadata(listID, computeListMetadata(books))
}
