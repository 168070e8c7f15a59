package controllers

import (
	"strings"

	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/utils"
)

const dateFormat = "02/01/2006 15:04"

// Layout carries what every page header needs.
type Layout struct {
	Title string
	User  *models.User
}

type IndexPage struct {
	Layout Layout
}

type LegalPage struct {
	Layout Layout
}

type SearchPage struct {
	Layout   Layout
	Query    string
	Title    string
	Products []models.Product
}

type ProductView struct {
	ID          uint
	Name        string
	Brand       string
	Nutriscore  string
	Description string
	Thumbnail   string
	URL         string
	Categories  string
}

type CommentView struct {
	Author  string
	Content string
	Date    string
}

type CommentForm struct {
	Commentaire string
	Errors      []string
}

type DetailPage struct {
	Layout   Layout
	Product  ProductView
	Comments []CommentView
	Empty    bool
	Favorite bool
	Form     CommentForm
	Notice   string
}

type SigninPage struct {
	Layout   Layout
	Username string
	Errors   []string
}

type SignupPage struct {
	Layout Layout
	Form   SignupInput
	Errors []string
}

type AccountPage struct {
	Layout     Layout
	Username   string
	Email      string
	DateJoined string
}

type FavoritesPage struct {
	Layout   Layout
	Products []models.Product
	Page     utils.Page
	Paginate bool
}

type ErrorPage struct {
	Layout  Layout
	Message string
}

func newProductView(p *models.Product) ProductView {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	view := ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Nutriscore: p.Nutriscore,
		Thumbnail:  p.Picture,
		URL:        p.URL,
		Categories: strings.Join(names, " "),
	}
	if p.Description != nil {
		view.Description = *p.Description
	}
	return view
}

func newCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author := "Anonyme"
		if c.User != nil {
			author = c.User.Username
		}
		views = append(views, CommentView{
			Author:  author,
			Content: c.Content,
			Date:    c.Date.Format(dateFormat),
		})
	}
	return views
}
