package entities

type Tournament struct {
	Id          string
	Name        string
	FullName    string
	Description string
}
