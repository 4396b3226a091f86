package controllers

import "github.com/encuestapp/survey-server/store"

// Store is the storage backend the handlers run against. main wires it at
// startup; tests swap in a fresh memory store.
var Store store.SurveyStore
