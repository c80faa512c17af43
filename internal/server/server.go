package server

// Server объединяет HTTP-серверы отдельных сущностей.
type Server struct {
	CourseServer
	BadgeServer
}

func NewServer(
	courseServer CourseServer,
	badgeServer BadgeServer,
) Server {
	return Server{
		CourseServer: courseServer,
		BadgeServer:  badgeServer,
	}
}
