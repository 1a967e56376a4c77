package chat

// WelcomeMessage seeds every new transcript before any user interaction.
const WelcomeMessage = "👋 Welcome to the IPC Crime Analyzer! I'm your AI legal assistant. " +
	"Describe a criminal incident in plain language or use voice input and I'll " +
	"map it to the relevant IPC sections with a summary and follow-up suggestions. " +
	"Try \"Someone stole my bike\" or \"My neighbor hit me with a stick\"."

// ConnectivityErrorMessage is appended when the analyze request never
// completes (transport failure).
const ConnectivityErrorMessage = "❌ Error: Unable to connect to the server. " +
	"Please check your internet connection and try again."

// GenericFailureReason substitutes for a missing server-provided reason on
// an application-level failure.
const GenericFailureReason = "Something went wrong. Please try again."

// VoiceUnsupportedMessage is the guidance shown when the user triggers
// voice input without a capture capability.
const VoiceUnsupportedMessage = "Speech recognition is not supported in your browser. " +
	"Please use Chrome, Edge, or Safari."
