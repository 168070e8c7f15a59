package controllers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var fieldLabels = map[string]string{
	"Username":    "Nom d'utilisateur",
	"Email":       "Adresse mail",
	"Password1":   "Mot de passe",
	"Password2":   "Confirmation du mot de passe",
	"Commentaire": "Commentaire",
}

// formErrors turns binding errors into messages shown above a form.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Formulaire invalide."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		msgs = append(msgs, fieldMessage(label, fe))
	}
	return msgs
}

func fieldMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s : ce champ est obligatoire.", label)
	case "email":
		return fmt.Sprintf("%s : saisissez une adresse mail valide.", label)
	case "min":
		return fmt.Sprintf("%s : au moins %s caractères.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s : au plus %s caractères.", label, fe.Param())
	case "eqfield":
		return "Les deux mots de passe ne correspondent pas."
	case "alphanumunicode":
		return fmt.Sprintf("%s : lettres et chiffres uniquement.", label)
	default:
		return fmt.Sprintf("%s : valeur invalide.", label)
	}
}
