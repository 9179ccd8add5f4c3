package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	en := language.AmericanEnglish
	message.SetString(en, "title.suffix", "%s | %s")
	message.SetString(en, "home.title", "Home")
	message.SetString(en, "home.heading", "Welcome to %s")
	message.SetString(en, "home.greet_link", "Say hello")
	message.SetString(en, "home.about_link", "About")
	message.SetString(en, "greeting.title", "Hello")
	message.SetString(en, "greeting.heading", "Hello, %s!")
	message.SetString(en, "greeting.current_path", "You are at %s")
	message.SetString(en, "about.title", "About")
	message.SetString(en, "about.body", "Every page here is rendered through one shared shell.")
	message.SetString(en, "about.rendered_at", "Props computed at %s")
	message.SetString(en, "error.title", "Error")
	message.SetString(en, "error.not_found", "This page could not be found.")
	message.SetString(en, "error.internal", "Something went wrong while rendering this page.")
	message.SetString(en, "error.unavailable", "This page is temporarily unavailable.")
	message.SetString(en, "error.bad_request", "The request could not be understood.")
	message.SetString(en, "error.back_home", "Back to home")

	pt := language.BrazilianPortuguese
	message.SetString(pt, "title.suffix", "%s | %s")
	message.SetString(pt, "home.title", "Início")
	message.SetString(pt, "home.heading", "Boas-vindas ao %s")
	message.SetString(pt, "home.greet_link", "Diga olá")
	message.SetString(pt, "home.about_link", "Sobre")
	message.SetString(pt, "greeting.title", "Olá")
	message.SetString(pt, "greeting.heading", "Olá, %s!")
	message.SetString(pt, "greeting.current_path", "Você está em %s")
	message.SetString(pt, "about.title", "Sobre")
	message.SetString(pt, "about.body", "Cada página aqui é renderizada por um único shell compartilhado.")
	message.SetString(pt, "about.rendered_at", "Props calculadas em %s")
	message.SetString(pt, "error.title", "Erro")
	message.SetString(pt, "error.not_found", "Esta página não foi encontrada.")
	message.SetString(pt, "error.internal", "Algo deu errado ao renderizar esta página.")
	message.SetString(pt, "error.unavailable", "Esta página está temporariamente indisponível.")
	message.SetString(pt, "error.bad_request", "Não foi possível entender a requisição.")
	message.SetString(pt, "error.back_home", "Voltar ao início")
}
