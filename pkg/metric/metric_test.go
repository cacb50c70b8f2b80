package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func Test_Collection_Register(t *testing.T) {
	r := prometheus.NewPedanticRegistry()

	for _, c := range New().Collectors() {
		err := r.Register(c)
		if err != nil {
			t.Fatal(err)
		}
	}
}
