package app

import "github.com/IT-Nick/testportal/internal/domain/authoring"

type (
	authoringCommand  = authoring.Command
	authoringMetadata = authoring.Metadata
)
