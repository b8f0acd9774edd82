package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type createFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

type createDeckRequest struct {
	Name           string `json:"name" validate:"required"`
	ParentFolderID string `json:"parentFolder"`
}

type updateDeckRequest struct {
	ID             string  `json:"id"`
	Name           string  `json:"name" validate:"required"`
	TotalCards     int     `json:"totalCards" validate:"gte=0"`
	Easy           int     `json:"easy" validate:"gte=0"`
	Good           int     `json:"good" validate:"gte=0"`
	Hard           int     `json:"hard" validate:"gte=0"`
	CardsLeft      int     `json:"cardsLeft" validate:"gte=0"`
	Archived       bool    `json:"archived"`
	ParentFolderID *string `json:"parentFolder"`
}

func (req updateDeckRequest) deck(id string) models.Deck {
	return models.Deck{
		ID:             id,
		Name:           req.Name,
		TotalCards:     req.TotalCards,
		Easy:           req.Easy,
		Good:           req.Good,
		Hard:           req.Hard,
		CardsLeft:      req.CardsLeft,
		Archived:       req.Archived,
		ParentFolderID: req.ParentFolderID,
	}
}

type renameDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

type createCardRequest struct {
	Question   string            `json:"question" validate:"required"`
	Answer     string            `json:"answer" validate:"required"`
	DeckIDs    []string          `json:"deckIds" validate:"required,min=1,dive,required"`
	Difficulty models.Difficulty `json:"difficulty" validate:"required,oneof=easy good hard"`
	NextReview *time.Time        `json:"nextReview"`
}

func (req createCardRequest) newCard() models.NewCard {
	nc := models.NewCard{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
		DeckIDs:    req.DeckIDs,
	}
	if req.NextReview != nil {
		nc.NextReview = *req.NextReview
	}
	return nc
}

type difficultyRequest struct {
	Difficulty models.Difficulty `json:"difficulty" validate:"required,oneof=easy good hard never"`
}

// decodeRequest reads a JSON body into v and runs its validate tags.
func decodeRequest(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.NewBadRequestError(err.Error())
	}
	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	if fe.Param() != "" {
		reason += " " + fe.Param()
	}
	return errors.NewValidationError(fe.Field(), reason)
}
