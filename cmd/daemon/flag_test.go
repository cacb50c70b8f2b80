package daemon

import (
	"strconv"
	"testing"
	"time"
)

func validFlag() *flag {
	f := &flag{}

	f.Cache.TTL = 300
	f.Controller.Interval = time.Second
	f.Handler.Timeout = time.Second
	f.HTTP.AllowedOrigin = "*"
	f.HTTP.Host = "127.0.0.1"
	f.HTTP.Port = "8080"
	f.Notion.DatabaseID = "db"
	f.Notion.MaxDepth = 3
	f.Notion.Token = "secret"
	f.Redis.Host = "127.0.0.1"
	f.Redis.Kind = "single"
	f.Redis.Port = "6379"

	return f
}

func Test_Flag_Validate(t *testing.T) {
	testCases := []struct {
		mutate func(f *flag)
		valid  bool
	}{
		// Case 0
		{
			mutate: func(f *flag) {},
			valid:  true,
		},
		// Case 1
		{
			mutate: func(f *flag) { f.Notion.Token = "" },
			valid:  false,
		},
		// Case 2
		{
			mutate: func(f *flag) { f.Cache.TTL = 0 },
			valid:  false,
		},
		// Case 3
		{
			mutate: func(f *flag) { f.Notion.DatabaseID = "" },
			valid:  false,
		},
		// Case 4
		{
			mutate: func(f *flag) { f.Notion.MaxDepth = -1 },
			valid:  false,
		},
	}

	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			f := validFlag()
			tc.mutate(f)

			err := f.Validate()
			if tc.valid && err != nil {
				t.Fatal(err)
			}
			if !tc.valid && !IsInvalidFlag(err) {
				t.Fatalf("expected invalid flag error, got %#v", err)
			}
		})
	}
}

func Test_envInt(t *testing.T) {
	t.Setenv("CACHE_TTL", "60")
	if envInt("CACHE_TTL", 300) != 60 {
		t.Fatal("expected environment value")
	}

	t.Setenv("CACHE_TTL", "soon")
	if envInt("CACHE_TTL", 300) != 300 {
		t.Fatal("expected default for unparseable value")
	}
}
