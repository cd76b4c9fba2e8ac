// File: utils/constants.go
package utils

// PlaceholderImageURL is the fallback image for any place without a photo.
const PlaceholderImageURL = "https://placehold.co/600x400/e8f3ff/4b6584?text=Place+Image"

// MapPlaceholderImageURL is the static map image used for every day route.
const MapPlaceholderImageURL = "https://placehold.co/640x980/e8f3ff/4b6584?text=Google+Map+Placeholder"

// TicketLinkUnavailable is emitted when no official ticket URL was found in research.
// A ticket link is never invented and third-party resellers are not substituted by default.
const TicketLinkUnavailable = "Ticket link unavailable — check official site or Google."
