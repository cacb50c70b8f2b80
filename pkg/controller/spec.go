package controller

type Interface interface {
	Boot()
}
