package listing

import "github.com/artem13815/jobsearch/pkg/job"

// Paginate returns jobs[(page-1)*size : page*size]. Pages outside the
// range yield an empty slice, never an error.
func Paginate(jobs []job.Job, page, size int) []job.Job {
	if page < 1 || size <= 0 {
		return []job.Job{}
	}
	start := (page - 1) * size
	if start >= len(jobs) {
		return []job.Job{}
	}
	end := start + size
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end:end]
}

// TotalPages is ceil(n/size); zero for an empty result.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageWindow lists the page buttons shown around current: one page on
// each side, clamped to [1, total].
func PageWindow(current, total int) []int {
	lo := max(1, current-1)
	hi := min(total, current+1)
	if lo > hi {
		return []int{}
	}
	out := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	return out
}
