package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/httpx/reply"
)

//nolint:gochecknoglobals
var coursesPage = template.Must(template.New("courses").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Courses</title>
</head>
<body>
<form method="get" action="/courses">
<input type="search" name="q" value="{{.Filter.Query}}" placeholder="Search courses">
<input type="text" name="department" value="{{.Filter.Department}}" placeholder="Department">
<button type="submit">Search</button>
</form>
{{if .Rows}}
<table>
<thead><tr><th>Code</th><th>Name</th><th>Reviews</th><th>Rating</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Reviews}}</td><td>{{.Badge}}</td></tr>
{{end}}</tbody>
</table>
{{else}}
<p>No courses found.</p>
{{end}}
</body>
</html>
`))

type coursePageRow struct {
	ID      string
	Name    string
	Reviews int
	Badge   template.HTML
}

type coursePageData struct {
	Filter entity.CourseFilter
	Rows   []coursePageRow
}

func (s CourseServer) getCoursesPage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := parseCourseFilter(r)
	if err != nil {
		return err
	}

	courses, err := s.courseService.ListCourses(ctx, filter)
	if err != nil {
		return fmt.Errorf("courseService.ListCourses: %w", err)
	}

	data := coursePageData{
		Filter: filter,
		Rows:   make([]coursePageRow, 0, len(courses)),
	}

	for _, c := range courses {
		data.Rows = append(data.Rows, coursePageRow{
			ID:      c.ID.String(),
			Name:    c.Name,
			Reviews: c.ReviewCount,
			Badge:   s.badges.Badge(c.Summary().Input(), value.SizeSmall).HTML(),
		})
	}

	var buf bytes.Buffer
	if err := coursesPage.Execute(&buf, data); err != nil {
		return fmt.Errorf("coursesPage.Execute: %w", err)
	}

	reply.HTML(ctx, w, http.StatusOK, buf.Bytes())

	return nil
}
