// Package metadata defines the task labels the prefetch queue uses.
package metadata

const (
	TaskAction   = "task.blogworker.io/action"
	TaskResource = "task.blogworker.io/resource"
	PostSlug     = "post.blogworker.io/slug"
)

// Contains reports whether all key value pairs of sub are present in met.
func Contains(met map[string]string, sub map[string]string) bool {
	if len(met) == 0 {
		return false
	}

	for k, v := range sub {
		if met[k] != v {
			return false
		}
	}

	return true
}
