package app

import "GameBoard/internal/board/domain"

func domainRender(placeholder, separator string) domain.RenderOptions {
	return domain.RenderOptions{Placeholder: placeholder, Separator: separator}
}
