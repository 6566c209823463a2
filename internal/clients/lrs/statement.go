package lrs

// xAPI statement model, reduced to the fields the record store consumes.

type ActorAccount struct {
	Name     string `json:"name"`
	HomePage string `json:"homePage"`
}

type Actor struct {
	ObjectType string       `json:"objectType"`
	Name       string       `json:"name"`
	Account    ActorAccount `json:"account"`
}

type Authority struct {
	ObjectType string `json:"objectType"`
	Name       string `json:"name"`
	Mbox       string `json:"mbox"`
}

type VerbDisplay struct {
	EnUS string `json:"en-US"`
}

type Verb struct {
	ID      string      `json:"id"`
	Display VerbDisplay `json:"display"`
}

type DefinitionName struct {
	EnUS string `json:"en-US"`
}

type Definition struct {
	Type        string         `json:"type"`
	Name        DefinitionName `json:"name"`
	Description DefinitionName `json:"description"`
}

type Object struct {
	ObjectType string     `json:"objectType"`
	ID         string     `json:"id"`
	Definition Definition `json:"definition"`
}

type Statement struct {
	ID        string    `json:"id"`
	Authority Authority `json:"authority"`
	Actor     Actor     `json:"actor"`
	Verb      Verb      `json:"verb"`
	Object    Object    `json:"object"`
	Timestamp string    `json:"timestamp,omitempty"`
}
