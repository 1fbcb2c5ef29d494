package model

// Theater represents a row in the `theaters` table.  A theater is an
// independent entity: shows reference it and seed their seat inventory
// from Capacity, but nothing in the booking flow mutates it.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – theater name.
//  Location    – street address or area description.
//  Capacity    – number of seats (positive); copied into new shows.
//  Description – optional free text about the venue.
type Theater struct {
    ID          uint64 // theaters.id
    Name        string // theaters.name
    Location    string // theaters.location
    Capacity    uint32 // theaters.capacity
    Description string // theaters.description
}
