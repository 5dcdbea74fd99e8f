package layout

import "github.com/omni-assistant/omni-scaffold/internal/constants"

// Default returns the built-in layout of the omni assistant project skeleton.
func Default() Layout {
	return Layout{
		Root:   constants.DefaultProjectDir,
		Marker: constants.DefaultMarkerFile,
		Dirs: []Dir{
			{Path: "core", Files: []string{"app.py", "config.py", "state.py", "exceptions.py"}},
			{Path: "services"},
			{Path: "services/speech"},
			{Path: "services/speech/recognition", Files: []string{"base.py", "vosk.py", "whisper.py"}},
			{Path: "services/speech/synthesis", Files: []string{"base.py", "local_tts.py", "espeak.py"}},
			{Path: "services/speech/wake_word", Files: []string{"base.py", "porcupine.py"}},
			{Path: "services/intent", Files: []string{"engine.py", "local_sti.py"}},
			{Path: "services/intent/handlers", Files: []string{"base.py", "calendar_handler.py", "weather_handler.py"}},
			{Path: "services/edge", Files: []string{"processor.py"}},
			{Path: "services/edge/cache", Files: []string{"base.py", "memory_cache.py"}},
			{Path: "services/cloud", Files: []string{"llm.py"}},
			{Path: "services/cloud/api", Files: []string{"calendar_service.py", "weather_service.py"}},
			{Path: "models", Files: []string{"intent.py", "command.py", "response.py"}},
			{Path: "utils", Files: []string{"async_utils.py", "logging.py", "validators.py"}},
		},
	}
}
